package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskInvoiceActivity is the asynq type for invoice activity emails.
	TaskInvoiceActivity = "invoice:activity"
)

// InvoiceActivityPayload is the JSON stored in Redis for the task.
type InvoiceActivityPayload struct {
	To       string                `json:"to"`
	Activity model.InvoiceActivity `json:"activity"`
}

// NewInvoiceActivityTask builds the task. It is retried three times on the
// low queue; a lost notification never affects the invoice itself.
func NewInvoiceActivityTask(to string, activity model.InvoiceActivity) (*asynq.Task, error) {
	payload, err := json.Marshal(InvoiceActivityPayload{
		To:       to,
		Activity: activity,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInvoiceActivity,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
