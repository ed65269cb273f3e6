package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/hibiken/asynq"
)

// ActivityMailer sends invoice activity emails.
type ActivityMailer interface {
	SendInvoiceActivityEmail(to string, activity model.InvoiceActivity) error
}

func (j *JobService) handleInvoiceActivityTask(ctx context.Context, t *asynq.Task) error {
	var p InvoiceActivityPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal invoice activity payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskInvoiceActivity).
		Str("kind", string(p.Activity.Kind)).
		Str("customer_id", p.Activity.CustomerID).
		Logger()

	logger.Info().Msg("processing invoice activity task")

	if err := j.mailer.SendInvoiceActivityEmail(p.To, p.Activity); err != nil {
		logger.Error().Err(err).Msg("failed to send invoice activity email")
		return err
	}

	logger.Info().Msg("sent invoice activity email")
	return nil
}
