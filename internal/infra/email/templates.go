// internal/infra/email/templates.go
package email

import (
	"fmt"
	"time"

	"billing_reminder_api/internal/domain/billing"
)

// Urgency styling: red/URGENTE at one day or less, amber/ATENÇÃO otherwise.
const (
	urgentColor  = "#e74c3c"
	warningColor = "#f39c12"
)

func urgencyOf(daysUntilDue int) (color, label string) {
	if daysUntilDue <= 1 {
		return urgentColor, "URGENTE"
	}
	return warningColor, "ATENÇÃO"
}

func dayWord(daysUntilDue int) string {
	if daysUntilDue > 1 {
		return "dias"
	}
	return "dia"
}

// BillingReminderHTML renders the HTML body of the reminder email.
// Rendering is pure: same inputs, same output (modulo the footer year).
func BillingReminderHTML(clientName string, dueDate billing.Date, daysUntilDue int) string {
	color, label := urgencyOf(daysUntilDue)
	days := fmt.Sprintf("%d %s", daysUntilDue, dayWord(daysUntilDue))

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Lembrete de Boleto</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; line-height: 1.6;">
    <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
        <div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center;">
            <h1 style="margin: 0; font-size: 24px; font-weight: 600;">Lembrete de Boleto</h1>
        </div>
        <div style="padding: 30px;">
            <p style="font-size: 16px; color: #333; margin-bottom: 20px;">
                Olá <strong style="color: #667eea;">%[1]s</strong>,
            </p>
            <div style="background: #fff3cd; border-left: 4px solid %[2]s; padding: 15px; margin: 20px 0; border-radius: 4px;">
                <p style="margin: 0; font-size: 14px; color: #856404; font-weight: 600; text-transform: uppercase; letter-spacing: 0.5px;">
                    %[3]s
                </p>
            </div>
            <p style="font-size: 16px; color: #666; line-height: 1.6; margin-bottom: 15px;">
                Este é um lembrete de que seu boleto vence em
                <span style="color: %[2]s; font-weight: bold; font-size: 18px;">%[4]s</span>
            </p>
            <div style="background: #f8f9fa; padding: 20px; border-radius: 6px; margin: 20px 0;">
                <table style="width: 100%%; border-collapse: collapse;">
                    <tr>
                        <td style="padding: 8px 0; color: #666; font-size: 14px;">Cliente:</td>
                        <td style="padding: 8px 0; color: #333; font-size: 14px; font-weight: 600; text-align: right;">%[1]s</td>
                    </tr>
                    <tr>
                        <td style="padding: 8px 0; color: #666; font-size: 14px;">Data de Vencimento:</td>
                        <td style="padding: 8px 0; color: %[2]s; font-size: 14px; font-weight: 600; text-align: right;">%[5]s</td>
                    </tr>
                    <tr>
                        <td style="padding: 8px 0; color: #666; font-size: 14px;">Dias Restantes:</td>
                        <td style="padding: 8px 0; color: %[2]s; font-size: 14px; font-weight: 600; text-align: right;">%[4]s</td>
                    </tr>
                </table>
            </div>
            <p style="font-size: 14px; color: #999; margin-top: 20px; margin-bottom: 0;">
                Por favor, verifique seu boleto e efetue o pagamento antes do vencimento para evitar multas e juros.
            </p>
        </div>
        <div style="background: #f8f9fa; padding: 20px; text-align: center; border-top: 1px solid #dee2e6;">
            <p style="font-size: 12px; color: #999; margin: 0 0 10px 0;">
                Este é um email automático, por favor não responda.
            </p>
            <p style="font-size: 11px; color: #bbb; margin: 0;">
                © %[6]d - Todos os direitos reservados
            </p>
        </div>
    </div>
</body>
</html>
`, clientName, color, label, days, dueDate.FormatBR(), time.Now().Year())
}

// BillingReminderText renders the plain-text alternative body.
func BillingReminderText(clientName string, dueDate billing.Date, daysUntilDue int) string {
	days := fmt.Sprintf("%d %s", daysUntilDue, dayWord(daysUntilDue))

	return fmt.Sprintf(`Olá %s,

Este é um lembrete de que seu boleto vence em %s.

Data de Vencimento: %s
Dias Restantes: %s

Por favor, verifique seu boleto e efetue o pagamento antes do vencimento para evitar multas e juros.

Este é um email automático, por favor não responda.`, clientName, days, dueDate.FormatBR(), days)
}
