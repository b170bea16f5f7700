// internal/domain/billing/status.go
package billing

// DispatchStatus represents the outcome of a reminder dispatch attempt,
// either for a single channel or for the record overall.
type DispatchStatus string

const (
	StatusSent    DispatchStatus = "sent"
	StatusDryRun  DispatchStatus = "dry-run"
	StatusSkipped DispatchStatus = "skipped"
	StatusFailed  DispatchStatus = "failed"
)
