package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "low"}, nil
}

func (e *recordingEnqueuer) Close() error { return nil }

type recordingMailer struct {
	to       string
	activity model.InvoiceActivity
	err      error
}

func (m *recordingMailer) SendInvoiceActivityEmail(to string, activity model.InvoiceActivity) error {
	m.to, m.activity = to, activity
	return m.err
}

func newTestJobService(enq Enqueuer, mailer ActivityMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{Client: enq, mailer: mailer, notify: "ops@example.com", logger: &logger}
}

var activity = model.InvoiceActivity{
	Kind:       model.InvoiceCreated,
	CustomerID: "c1",
	Amount:     4550,
	Status:     model.InvoiceStatusPending,
	Date:       "2026-10-19",
}

func TestNotifyInvoiceActivityEnqueues(t *testing.T) {
	enq := &recordingEnqueuer{}
	j := newTestJobService(enq, &recordingMailer{})

	require.NoError(t, j.NotifyInvoiceActivity(context.Background(), activity))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskInvoiceActivity, enq.tasks[0].Type())

	var p InvoiceActivityPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, "ops@example.com", p.To)
	assert.Equal(t, activity, p.Activity)
}

func TestNotifyInvoiceActivityEnqueueError(t *testing.T) {
	j := newTestJobService(&recordingEnqueuer{err: errors.New("redis down")}, &recordingMailer{})

	err := j.NotifyInvoiceActivity(context.Background(), activity)
	assert.ErrorContains(t, err, "redis down")
}

func TestHandleInvoiceActivityTask(t *testing.T) {
	mailer := &recordingMailer{}
	j := newTestJobService(&recordingEnqueuer{}, mailer)

	task, err := NewInvoiceActivityTask("ops@example.com", activity)
	require.NoError(t, err)

	require.NoError(t, j.handleInvoiceActivityTask(context.Background(), task))
	assert.Equal(t, "ops@example.com", mailer.to)
	assert.Equal(t, activity, mailer.activity)
}

func TestHandleInvoiceActivityTaskFailures(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("resend unavailable")}
	j := newTestJobService(&recordingEnqueuer{}, mailer)

	task, err := NewInvoiceActivityTask("ops@example.com", activity)
	require.NoError(t, err)
	assert.ErrorContains(t, j.handleInvoiceActivityTask(context.Background(), task), "resend unavailable")

	bad := asynq.NewTask(TaskInvoiceActivity, []byte("{"))
	assert.ErrorIs(t, j.handleInvoiceActivityTask(context.Background(), bad), asynq.SkipRetry)
}
