// internal/domain/billing/run.go
package billing

// RunRequest is the payload accepted by the reminder run endpoint.
// Zero values fall back to configured defaults: an empty SheetPath uses the
// configured spreadsheet and a zero ReferenceDate means "today".
type RunRequest struct {
	SheetPath            string `json:"sheet_path"`
	ReferenceDate        Date   `json:"reference_date"`
	DryRun               bool   `json:"dry_run"`
	SenderWhatsAppNumber string `json:"sender_whatsapp_number"`
}

// DispatchResult describes the outcome for one eligible billing record.
type DispatchResult struct {
	ClientName     string         `json:"client_name"`
	WhatsAppNumber string         `json:"whatsapp_number"`
	DueDate        Date           `json:"due_date"`
	DaysUntilDue   int            `json:"days_until_due"`
	Status         DispatchStatus `json:"status"`
	MessagePreview string         `json:"message_preview"`
	Detail         string         `json:"detail,omitempty"`
}

// RunSummary is the aggregate result of one reminder run.
// TotalRows counts successfully parsed records, not raw spreadsheet rows.
// Dispatched counts records whose overall status is sent or dry-run.
type RunSummary struct {
	SheetPath     string           `json:"sheet_path"`
	ReferenceDate Date             `json:"reference_date"`
	DaysWatched   []int            `json:"days_watched"`
	DryRun        bool             `json:"dry_run"`
	TotalRows     int              `json:"total_rows"`
	EligibleRows  int              `json:"eligible_rows"`
	Dispatched    int              `json:"dispatched"`
	Results       []DispatchResult `json:"results"`
}
