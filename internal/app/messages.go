// internal/app/messages.go
package app

import (
	"fmt"

	"billing_reminder_api/internal/domain/billing"
)

// previewLimit caps the message excerpt echoed back in dispatch results.
const previewLimit = 120

// buildReminderMessage renders the WhatsApp reminder text. At one day or less
// the wording switches to singular urgency.
func buildReminderMessage(record billing.Record, daysUntilDue int) string {
	if daysUntilDue <= 1 {
		return fmt.Sprintf(
			"Ola %s, o seu boleto vence em %s. Falta 1 dia para o vencimento.",
			record.ClientName, record.DueDate.FormatBR(),
		)
	}
	return fmt.Sprintf(
		"Ola %s, faltam %d dias para o vencimento do seu boleto (%s).",
		record.ClientName, daysUntilDue, record.DueDate.FormatBR(),
	)
}

func previewOf(message string) string {
	runes := []rune(message)
	if len(runes) <= previewLimit {
		return message
	}
	return string(runes[:previewLimit])
}
