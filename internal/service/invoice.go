package service

import (
	"context"
	"time"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/sqlerr"
	"github.com/rs/zerolog"
)

const (
	createInvoiceFailed = "Database Error: Failed to add new invoice."
	updateInvoiceFailed = "Database Error: Failed to edit the invoice."
	deleteInvoiceFailed = "Database Error: Failed to delete the invoice."

	// listInvoicesLimit caps the list view.
	listInvoicesLimit = 100
)

// InvoiceStore persists invoices.
type InvoiceStore interface {
	Insert(ctx context.Context, in model.InvoiceInput, date string) error
	Update(ctx context.Context, id string, in model.InvoiceInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, limit int) ([]model.InvoiceRow, error)
}

// ViewCache holds rendered views keyed by path.
type ViewCache interface {
	Get(ctx context.Context, path string, dest any) (bool, error)
	Set(ctx context.Context, path string, v any) error
	Revalidate(ctx context.Context, path string) error
}

// ActivityNotifier is told about successful invoice changes.
type ActivityNotifier interface {
	NotifyInvoiceActivity(ctx context.Context, activity model.InvoiceActivity) error
}

type InvoiceService struct {
	store    InvoiceStore
	cache    ViewCache
	notifier ActivityNotifier
	now      func() time.Time
}

// NewInvoiceService wires the invoice actions. notifier may be a nil interface;
// a typed nil pointer is not detected.
func NewInvoiceService(store InvoiceStore, cache ViewCache, notifier ActivityNotifier) *InvoiceService {
	return &InvoiceService{
		store:    store,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateInvoice stores a new invoice dated today (UTC).
//
// A malformed form is returned as an error. A database failure is logged and
// reported through the returned state's Message. Success revalidates the
// invoice list and redirects to it.
func (s *InvoiceService) CreateInvoice(ctx context.Context, form *model.InvoiceForm) (model.ActionState, error) {
	input, err := form.Parse()
	if err != nil {
		return model.ActionState{}, err
	}

	date := s.now().UTC().Format(time.DateOnly)

	if err := s.store.Insert(ctx, input, date); err != nil {
		logDatabaseError(ctx, err, "create_invoice", createInvoiceFailed)
		return model.Failure(createInvoiceFailed), nil
	}

	s.revalidate(ctx, model.InvoicesPath)
	s.notify(ctx, model.InvoiceActivity{
		Kind:       model.InvoiceCreated,
		CustomerID: input.CustomerID,
		Amount:     input.AmountInCents,
		Status:     input.Status,
		Date:       date,
	})

	return model.RedirectTo(model.InvoicesPath), nil
}

// UpdateInvoice rewrites customer, amount and status of invoice id. The id
// and date never change. An unknown id is a no-op.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form *model.InvoiceForm) (model.ActionState, error) {
	input, err := form.Parse()
	if err != nil {
		return model.ActionState{}, err
	}

	affected, err := s.store.Update(ctx, id, input)
	if err != nil {
		logDatabaseError(ctx, err, "update_invoice", updateInvoiceFailed)
		return model.Failure(updateInvoiceFailed), nil
	}

	if affected == 0 {
		zerolog.Ctx(ctx).Debug().Str("invoice_id", id).Msg("update matched no invoice")
	}

	s.revalidate(ctx, model.InvoicesPath)
	s.notify(ctx, model.InvoiceActivity{
		Kind:       model.InvoiceUpdated,
		InvoiceID:  id,
		CustomerID: input.CustomerID,
		Amount:     input.AmountInCents,
		Status:     input.Status,
	})

	return model.RedirectTo(model.InvoicesPath), nil
}

// DeleteInvoice removes invoice id. Success revalidates the list but does
// not redirect; an unknown id is a no-op.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) model.ActionState {
	affected, err := s.store.Delete(ctx, id)
	if err != nil {
		logDatabaseError(ctx, err, "delete_invoice", deleteInvoiceFailed)
		return model.Failure(deleteInvoiceFailed)
	}

	if affected == 0 {
		zerolog.Ctx(ctx).Debug().Str("invoice_id", id).Msg("delete matched no invoice")
	}

	s.revalidate(ctx, model.InvoicesPath)
	return model.ActionState{}
}

// ListInvoices serves the invoice list, from the view cache when it is fresh.
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]model.InvoiceRow, error) {
	logger := zerolog.Ctx(ctx)

	var cached []model.InvoiceRow
	hit, err := s.cache.Get(ctx, model.InvoicesPath, &cached)
	if err != nil {
		logger.Warn().Err(err).Msg("invoice list cache read failed")
	}
	if hit {
		return cached, nil
	}

	invoices, err := s.store.List(ctx, listInvoicesLimit)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []model.InvoiceRow{}
	}

	if err := s.cache.Set(ctx, model.InvoicesPath, invoices); err != nil {
		logger.Warn().Err(err).Msg("invoice list cache write failed")
	}

	return invoices, nil
}

func (s *InvoiceService) revalidate(ctx context.Context, path string) {
	if err := s.cache.Revalidate(ctx, path); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to revalidate view")
	}
}

func (s *InvoiceService) notify(ctx context.Context, activity model.InvoiceActivity) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyInvoiceActivity(ctx, activity); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("kind", string(activity.Kind)).Msg("failed to queue invoice notification")
	}
}

func logDatabaseError(ctx context.Context, err error, operation, message string) {
	zerolog.Ctx(ctx).Error().
		Err(err).
		Str("operation", operation).
		Str("sql_code", string(sqlerr.ErrCode(err))).
		Msg(message)
}
