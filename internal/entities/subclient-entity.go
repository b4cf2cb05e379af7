package entities

import (
	"strings"

	"backoffice-system/pkg/types"
)

type SubClient struct {
	ID               uint64 `json:"id" db:"id"`
	WorkflowEntityID uint64 `json:"workflow_entity_id" db:"workflow_entity_id"`
	ClientID         uint64 `json:"client_id" db:"client_id"`
	Name             string `json:"name" db:"name"`
	GSTIN            string `json:"gstin" db:"gstin"`

	AddressLine string `json:"address_line" db:"address_line"`
	City        string `json:"city" db:"city"`
	State       string `json:"state" db:"state"`
	Pincode     string `json:"pincode" db:"pincode"`

	CostCentreBalances []CostCentreBalance `json:"cost_centre_balances" db:"-"`

	types.BaseEntity
}

// CostCentreBalance carries the GST-split opening balance of a sub-client
// against one cost centre. The split is mutually exclusive: intra-state uses
// CGST+SGST, inter-state uses IGST, and the unused side is forced to zero.
type CostCentreBalance struct {
	ID           uint64  `json:"id" db:"id"`
	SubClientID  uint64  `json:"sub_client_id" db:"sub_client_id"`
	CostCentreID uint64  `json:"cost_centre_id" db:"cost_centre_id"`
	BasicAmount  float64 `json:"basic_amount" db:"basic_amount"`
	CGST         float64 `json:"cgst" db:"cgst"`
	SGST         float64 `json:"sgst" db:"sgst"`
	IGST         float64 `json:"igst" db:"igst"`
	Total        float64 `json:"total" db:"total"`
	IsIntraState bool    `json:"is_intra_state" db:"is_intra_state"`
	Position     int     `json:"position" db:"position"`
}

// Normalize applies the GST-split policy for the given state relation and
// recomputes the derived total.
func (b *CostCentreBalance) Normalize(isIntraState bool) {
	b.IsIntraState = isIntraState
	if isIntraState {
		b.IGST = 0
	} else {
		b.CGST = 0
		b.SGST = 0
	}
	b.Total = b.BasicAmount + b.CGST + b.SGST + b.IGST
}

// IsIntraState compares the cost centre's registered state with the
// sub-client's address state.
func IsIntraState(costCentreState, subClientState string) bool {
	return strings.EqualFold(strings.TrimSpace(costCentreState), strings.TrimSpace(subClientState))
}

type CostCentre struct {
	ID    uint64 `json:"id" db:"id"`
	CCNo  string `json:"cc_no" db:"cc_no"`
	Name  string `json:"name" db:"name"`
	State string `json:"state" db:"state"`
}
