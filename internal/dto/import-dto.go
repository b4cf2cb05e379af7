package dto

// ImportResultDTO summarizes one spreadsheet bulk import. All created rows
// share the batch id and are verified or rejected as a group.
type ImportResultDTO struct {
	BatchID string   `json:"batch_id"`
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
