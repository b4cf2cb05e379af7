package entities

import "backoffice-system/pkg/types"

type Client struct {
	ID               uint64 `json:"id" db:"id"`
	WorkflowEntityID uint64 `json:"workflow_entity_id" db:"workflow_entity_id"`
	Name             string `json:"name" db:"name"`
	ClientType       string `json:"client_type" db:"client_type"`
	AccountingGroup  string `json:"accounting_group" db:"accounting_group"`
	PAN              string `json:"pan" db:"pan"`
	GSTIN            string `json:"gstin" db:"gstin"`

	AddressLine string `json:"address_line" db:"address_line"`
	City        string `json:"city" db:"city"`
	State       string `json:"state" db:"state"`
	Pincode     string `json:"pincode" db:"pincode"`

	Contacts     []ClientContact     `json:"contact_persons" db:"-"`
	BankAccounts []ClientBankAccount `json:"bank_accounts" db:"-"`

	types.BaseEntity
}

type ClientContact struct {
	ID       uint64 `json:"id" db:"id"`
	ClientID uint64 `json:"client_id" db:"client_id"`
	Name     string `json:"name" db:"name"`
	Phone    string `json:"phone" db:"phone"`
	Email    string `json:"email" db:"email"`
	// Position 0 is the primary contact and cannot be removed.
	Position int `json:"position" db:"position"`
}

type ClientBankAccount struct {
	ID            uint64 `json:"id" db:"id"`
	ClientID      uint64 `json:"client_id" db:"client_id"`
	BankName      string `json:"bank_name" db:"bank_name"`
	AccountNumber string `json:"account_number" db:"account_number"`
	IFSC          string `json:"ifsc" db:"ifsc"`
	// The first account is the default one; position 0 cannot be removed.
	IsDefault bool `json:"is_default" db:"is_default"`
	Position  int  `json:"position" db:"position"`
}
