// internal/app/reminder_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"billing_reminder_api/internal/domain/billing"
	"billing_reminder_api/internal/domain/channel"
	emailtmpl "billing_reminder_api/internal/infra/email"
)

// ErrNoReminderDays is returned when the service is constructed with an empty
// watch-day set. This is a configuration error and fails fast, before any run.
var ErrNoReminderDays = errors.New("reminder days cannot be empty")

// ReminderService defines the on-demand billing reminder job.
type ReminderService interface {
	// Run reads the billing spreadsheet, finds the records whose due date
	// falls on one of the configured watch days relative to the reference
	// date, and dispatches WhatsApp and email reminders for them.
	Run(ctx context.Context, req billing.RunRequest) (*billing.RunSummary, error)
}

// SheetLoader abstracts spreadsheet access for the reminder service.
type SheetLoader interface {
	Load(path string) ([]billing.Record, error)
}

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	loader           SheetLoader
	chatSender       channel.ChatSender
	emailSender      channel.EmailSender
	emailEnabled     bool
	defaultSheetPath string
	reminderDays     []int // ascending, distinct
	logger           *logrus.Logger
}

func NewReminderService(
	defaultSheetPath string,
	reminderDays []int,
	loader SheetLoader,
	chatSender channel.ChatSender,
	emailSender channel.EmailSender,
	emailEnabled bool,
	logger *logrus.Logger,
) (*ReminderServiceImpl, error) {
	if len(reminderDays) == 0 {
		return nil, ErrNoReminderDays
	}

	return &ReminderServiceImpl{
		loader:           loader,
		chatSender:       chatSender,
		emailSender:      emailSender,
		emailEnabled:     emailEnabled,
		defaultSheetPath: defaultSheetPath,
		reminderDays:     sortedDistinct(reminderDays),
		logger:           logger,
	}, nil
}

// Run executes one reminder evaluation. Only sheet-level failures abort the
// run; a channel failure for one record is captured in that record's result
// and the run continues.
func (s *ReminderServiceImpl) Run(ctx context.Context, req billing.RunRequest) (*billing.RunSummary, error) {
	sheetPath := req.SheetPath
	if sheetPath == "" {
		sheetPath = s.defaultSheetPath
	}
	sheetPath = expandUser(sheetPath)

	referenceDate := req.ReferenceDate
	if referenceDate.IsZero() {
		referenceDate = billing.Today()
	}

	s.logger.Infof("Starting billing reminder run: sheet=%s reference=%s dry_run=%t", sheetPath, referenceDate, req.DryRun)

	records, err := s.loader.Load(sheetPath)
	if err != nil {
		s.logger.Errorf("Billing reminder run aborted: %v", err)
		return nil, err
	}

	summary := &billing.RunSummary{
		SheetPath:     sheetPath,
		ReferenceDate: referenceDate,
		DaysWatched:   s.reminderDays,
		DryRun:        req.DryRun,
		TotalRows:     len(records),
		Results:       []billing.DispatchResult{},
	}

	// Process in ascending due-date order; the sort is stable so rows with
	// the same due date keep their spreadsheet order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DueDate.Before(records[j].DueDate)
	})

	for _, record := range records {
		daysUntilDue := record.DueDate.DaysUntil(referenceDate)
		if !s.watched(daysUntilDue) {
			continue
		}
		if daysUntilDue < 0 {
			continue
		}

		summary.EligibleRows++
		result := s.dispatch(ctx, record, daysUntilDue, req)
		if result.Status == billing.StatusSent || result.Status == billing.StatusDryRun {
			summary.Dispatched++
		}
		summary.Results = append(summary.Results, result)
	}

	s.logger.Infof("Billing reminder run finished: total=%d eligible=%d dispatched=%d", summary.TotalRows, summary.EligibleRows, summary.Dispatched)
	return summary, nil
}

// dispatch attempts delivery for one eligible record over both channels and
// reduces the per-channel outcomes into a single result.
func (s *ReminderServiceImpl) dispatch(ctx context.Context, record billing.Record, daysUntilDue int, req billing.RunRequest) billing.DispatchResult {
	message := buildReminderMessage(record, daysUntilDue)

	whatsappStatus, whatsappDetail := s.sendWhatsApp(ctx, record, message, req)
	emailStatus, emailDetail := s.sendEmail(ctx, record, daysUntilDue, req.DryRun)

	// Either channel succeeding makes the record sent; otherwise the
	// WhatsApp status is authoritative. A WhatsApp failure next to a
	// skipped email therefore stays failed.
	overall := whatsappStatus
	if emailStatus == billing.StatusSent {
		overall = billing.StatusSent
	}

	var detailParts []string
	if whatsappDetail != "" {
		detailParts = append(detailParts, "WhatsApp: "+whatsappDetail)
	}
	if emailDetail != "" {
		detailParts = append(detailParts, "Email: "+emailDetail)
	}

	return billing.DispatchResult{
		ClientName:     record.ClientName,
		WhatsAppNumber: record.WhatsAppNumber,
		DueDate:        record.DueDate,
		DaysUntilDue:   daysUntilDue,
		Status:         overall,
		MessagePreview: previewOf(message),
		Detail:         strings.Join(detailParts, " | "),
	}
}

func (s *ReminderServiceImpl) sendWhatsApp(ctx context.Context, record billing.Record, message string, req billing.RunRequest) (billing.DispatchStatus, string) {
	if req.DryRun {
		return billing.StatusDryRun, "Dry-run: WhatsApp não enviado."
	}

	detail, err := s.chatSender.SendText(ctx, record.WhatsAppNumber, message, req.SenderWhatsAppNumber)
	if err != nil {
		s.logger.Errorf("WhatsApp dispatch failed for %s (%s): %v", record.ClientName, record.WhatsAppNumber, err)
		return billing.StatusFailed, err.Error()
	}
	if detail == "" {
		detail = "Mensagem registrada no WAHA."
	}
	return billing.StatusSent, detail
}

func (s *ReminderServiceImpl) sendEmail(ctx context.Context, record billing.Record, daysUntilDue int, dryRun bool) (billing.DispatchStatus, string) {
	if !s.emailEnabled || s.emailSender == nil || record.Email == "" {
		if record.Email == "" {
			return billing.StatusSkipped, "Email não informado na planilha."
		}
		return billing.StatusSkipped, ""
	}

	if dryRun {
		return billing.StatusDryRun, "Dry-run: Email não enviado."
	}

	subject := fmt.Sprintf("Lembrete de Boleto - Vence em %d dia(s)", daysUntilDue)
	html := emailtmpl.BillingReminderHTML(record.ClientName, record.DueDate, daysUntilDue)
	text := emailtmpl.BillingReminderText(record.ClientName, record.DueDate, daysUntilDue)

	detail, err := s.emailSender.Send(ctx, record.Email, subject, html, text)
	if err != nil {
		s.logger.Errorf("Email dispatch failed for %s (%s): %v", record.ClientName, record.Email, err)
		return billing.StatusFailed, err.Error()
	}
	if detail == "" {
		detail = "Email enviado com sucesso."
	}
	return billing.StatusSent, detail
}

func (s *ReminderServiceImpl) watched(days int) bool {
	for _, d := range s.reminderDays {
		if d == days {
			return true
		}
	}
	return false
}

func sortedDistinct(days []int) []int {
	seen := make(map[int]struct{}, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// expandUser resolves a leading "~" the way the shell would.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
