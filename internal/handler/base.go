package handler

import (
	"net/http"
	"reflect"
	"time"

	"github.com/deppfellow/go-invoicing/internal/middleware"
	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/server"
	"github.com/deppfellow/go-invoicing/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared application dependencies. Concrete handlers
// embed it.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint receiving a bound, validated request.
// Req is a pointer type so echo can bind into it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler writes a successful result and describes it for logs and
// traces.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON with a fixed status.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// ActionResponseHandler interprets a model.ActionState:
//
//   - Message set: failureStatus with {"message": ...}
//   - Redirect set: 303 See Other to Redirect
//   - neither: successStatus with no body
type ActionResponseHandler struct {
	successStatus int
	failureStatus int
}

func (h ActionResponseHandler) Handle(c echo.Context, result any) error {
	state, _ := result.(model.ActionState)

	switch {
	case state.Failed():
		return c.JSON(h.failureStatus, state)
	case state.Redirect != "":
		return c.Redirect(http.StatusSeeOther, state.Redirect)
	default:
		return c.NoContent(h.successStatus)
	}
}

func (h ActionResponseHandler) GetOperation() string {
	return "handler_action"
}

func (h ActionResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	if state, ok := result.(model.ActionState); ok {
		txn.AddAttribute("action.failed", state.Failed())
		txn.AddAttribute("action.redirect", state.Redirect)
	}
}

// newRequest returns a zero value of the type proto points to, so every
// request binds into its own struct.
func newRequest[Req validation.Validatable](proto Req) Req {
	t := reflect.TypeOf(proto)
	if t == nil || t.Kind() != reflect.Pointer {
		return proto
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// handleRequest is the pipeline shared by every typed endpoint: bind and
// validate, run the handler, write the response. Each phase is logged with
// the request logger and timed on the New Relic transaction.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", c.Request().Method).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Error().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle registers a typed endpoint that answers with JSON.
//
//	router.GET("/x", handler.Handle(h, fn, http.StatusOK, &XRequest{}))
//
// req is only a prototype; every request binds into a fresh value.
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleAction registers a form action. The returned ActionState decides the
// response: a redirect, failureStatus with the message, or successStatus.
func HandleAction[Req validation.Validatable](
	h Handler,
	handler HandlerFunc[Req, model.ActionState],
	successStatus int,
	failureStatus int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, ActionResponseHandler{successStatus: successStatus, failureStatus: failureStatus})
	}
}
