package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	panRegex     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstinRegex   = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][A-Z0-9]Z[A-Z0-9]$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
	phoneRegex   = regexp.MustCompile(`^\d{10}$`)
)

// RegisterCustomValidations registers the statutory format rules on the
// given validator instance. Each rule passes on an empty value: presence is
// the caller's concern (conditional requirements such as PAN being optional
// for Individual clients), format is ours.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("pan", isValidPAN); err != nil {
		return err
	}
	if err := v.RegisterValidation("gstin", isValidGSTIN); err != nil {
		return err
	}
	if err := v.RegisterValidation("pincode", isValidPincode); err != nil {
		return err
	}
	if err := v.RegisterValidation("in_phone", isValidPhone); err != nil {
		return err
	}
	return nil
}

func isValidPAN(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return panRegex.MatchString(s)
}

func isValidGSTIN(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return gstinRegex.MatchString(s)
}

func isValidPincode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return pincodeRegex.MatchString(s)
}

func isValidPhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return phoneRegex.MatchString(s)
}
