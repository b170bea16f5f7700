// internal/app/messages_test.go
package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billing_reminder_api/internal/domain/billing"
)

func TestBuildReminderMessage_Singular(t *testing.T) {
	rec := billing.Record{ClientName: "Ana", DueDate: billing.NewDate(2024, time.March, 10)}

	for _, days := range []int{0, 1} {
		message := buildReminderMessage(rec, days)
		assert.Equal(t, "Ola Ana, o seu boleto vence em 10/03/2024. Falta 1 dia para o vencimento.", message, "days=%d", days)
	}
}

func TestBuildReminderMessage_Plural(t *testing.T) {
	rec := billing.Record{ClientName: "Bruno", DueDate: billing.NewDate(2024, time.March, 10)}

	message := buildReminderMessage(rec, 3)
	assert.Equal(t, "Ola Bruno, faltam 3 dias para o vencimento do seu boleto (10/03/2024).", message)
}

func TestPreviewOf(t *testing.T) {
	short := "mensagem curta"
	assert.Equal(t, short, previewOf(short))

	long := make([]rune, 0, 200)
	for i := 0; i < 200; i++ {
		long = append(long, 'ç') // multi-byte, the cut must be rune-aware
	}
	preview := previewOf(string(long))
	assert.Equal(t, previewLimit, len([]rune(preview)))
}
