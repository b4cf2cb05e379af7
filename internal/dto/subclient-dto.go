package dto

type CostCentreBalanceDTO struct {
	CostCentreID uint64  `json:"cost_centre_id" validate:"required"`
	BasicAmount  float64 `json:"basic_amount" validate:"gte=0"`
	CGST         float64 `json:"cgst" validate:"gte=0"`
	SGST         float64 `json:"sgst" validate:"gte=0"`
	IGST         float64 `json:"igst" validate:"gte=0"`
}

type CreateSubClientDTO struct {
	ClientID uint64 `json:"client_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=150"`
	GSTIN    string `json:"gstin" validate:"omitempty,gstin"`

	Address AddressDTO `json:"address" validate:"required"`

	CostCentreBalances []CostCentreBalanceDTO `json:"cost_centre_balances" validate:"omitempty,dive"`
}

type SubClientDTO struct {
	ID               uint64 `json:"id"`
	WorkflowEntityID uint64 `json:"workflow_entity_id"`
	ClientID         uint64 `json:"client_id"`
	Name             string `json:"name"`
	GSTIN            string `json:"gstin,omitempty"`
	AddressLine      string `json:"address_line"`
	City             string `json:"city"`
	State            string `json:"state"`
	Pincode          string `json:"pincode"`
	Status           string `json:"status"`

	CostCentreBalances []CostCentreBalanceResultDTO `json:"cost_centre_balances"`

	CreatedAt string `json:"created_at"`
}

type CostCentreBalanceResultDTO struct {
	CostCentreID uint64  `json:"cost_centre_id"`
	BasicAmount  float64 `json:"basic_amount"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	Total        float64 `json:"total"`
	IsIntraState bool    `json:"is_intra_state"`
}

type CostCentreDTO struct {
	ID    uint64 `json:"id"`
	CCNo  string `json:"cc_no"`
	Name  string `json:"name"`
	State string `json:"state"`
}
