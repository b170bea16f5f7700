// internal/domain/billing/record.go
package billing

// Record is one successfully parsed row of the billing spreadsheet.
// A Record only exists when client name, WhatsApp number and due date all
// resolved; rows failing any of those are dropped by the loader.
type Record struct {
	ClientName     string
	WhatsAppNumber string
	Email          string // empty when the sheet has no usable email for the row
	DueDate        Date
}
