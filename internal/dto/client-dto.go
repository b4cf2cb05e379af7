package dto

import "github.com/aarondl/null/v8"

type ContactPersonDTO struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,in_phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type BankAccountDTO struct {
	BankName      string `json:"bank_name" validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"required,max=20"`
	IFSC          string `json:"ifsc" validate:"required,len=11"`
}

type AddressDTO struct {
	AddressLine string `json:"address_line" validate:"required,max=200"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	Pincode     string `json:"pincode" validate:"required,pincode"`
}

type CreateClientDTO struct {
	Name            string `json:"name" validate:"required,max=150"`
	ClientType      string `json:"client_type" validate:"required,oneof=Individual Proprietorship Partnership PrivateLimited PublicLimited"`
	AccountingGroup string `json:"accounting_group" validate:"required,max=100"`
	// PAN is conditionally required: mandatory for every client type except
	// Individual. Checked in the service, format checked here.
	PAN   string `json:"pan" validate:"omitempty,pan"`
	GSTIN string `json:"gstin" validate:"omitempty,gstin"`

	Address AddressDTO `json:"address" validate:"required"`

	ContactPersons []ContactPersonDTO `json:"contact_persons" validate:"required,min=1,dive"`
	BankAccounts   []BankAccountDTO   `json:"bank_accounts" validate:"omitempty,dive"`
}

type UpdateClientDTO struct {
	Name            null.String `json:"name"`
	AccountingGroup null.String `json:"accounting_group"`
	GSTIN           null.String `json:"gstin"`
	AddressLine     null.String `json:"address_line"`
	City            null.String `json:"city"`
	State           null.String `json:"state"`
	Pincode         null.String `json:"pincode"`
}

type ClientDTO struct {
	ID               uint64 `json:"id"`
	WorkflowEntityID uint64 `json:"workflow_entity_id"`
	Name             string `json:"name"`
	ClientType       string `json:"client_type"`
	AccountingGroup  string `json:"accounting_group"`
	PAN              string `json:"pan,omitempty"`
	GSTIN            string `json:"gstin,omitempty"`
	AddressLine      string `json:"address_line"`
	City             string `json:"city"`
	State            string `json:"state"`
	Pincode          string `json:"pincode"`
	Status           string `json:"status"`

	ContactPersons []ContactPersonDTO `json:"contact_persons"`
	BankAccounts   []BankAccountDTO   `json:"bank_accounts"`

	CreatedAt string `json:"created_at"`
}
