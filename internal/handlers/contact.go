package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/contact"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/httpx"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/observability"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/requestctx"
)

const (
	defaultMaxContactBodySize = 64 * 1024
	contactSuccessMessage     = "Thank you! Your message has been received."
)

var (
	errEmptyBody    = errors.New("request body is empty")
	errBodyTooLarge = errors.New("request body too large")
)

// ContactSubmitter accepts contact form payloads. Admit is consulted before the
// body is read so throttled callers are turned away early.
type ContactSubmitter interface {
	Admit(meta contact.RequestMeta) error
	Submit(ctx context.Context, payload contact.Payload, meta contact.RequestMeta) (contact.Receipt, error)
}

// ContactHandlers exposes the contact form intake endpoint.
type ContactHandlers struct {
	service     ContactSubmitter
	maxBodySize int64
}

// ContactOption customises ContactHandlers.
type ContactOption func(*ContactHandlers)

// WithContactMaxBody caps the request body size.
func WithContactMaxBody(n int64) ContactOption {
	return func(h *ContactHandlers) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

// NewContactHandlers constructs a new ContactHandlers instance.
func NewContactHandlers(service ContactSubmitter, opts ...ContactOption) *ContactHandlers {
	h := &ContactHandlers{
		service:     service,
		maxBodySize: defaultMaxContactBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes registers the /contact endpoint. Methods other than POST fall through
// to the router's MethodNotAllowed handler.
func (h *ContactHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/contact", h.submit)
}

type contactResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    contactReceiptData `json:"data"`
}

type contactReceiptData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

func (h *ContactHandlers) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.service == nil {
		httpx.WriteError(ctx, w, httpx.InternalError())
		return
	}

	meta := contact.RequestMeta{
		ClientIP:  observability.ClientIP(r),
		UserAgent: observability.SanitizeUserAgent(r.UserAgent()),
	}
	if err := h.service.Admit(meta); err != nil {
		writeContactError(ctx, w, err)
		return
	}

	body, err := readLimitedBody(r, h.maxBodySize)
	if err != nil {
		writeContactError(ctx, w, errors.Join(contact.ErrMalformedRequest, err))
		return
	}

	payload, err := contact.ParsePayload(body)
	if err != nil {
		writeContactError(ctx, w, err)
		return
	}

	receipt, err := h.service.Submit(ctx, payload, meta)
	if err != nil {
		writeContactError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, contactResponse{
		Success: true,
		Message: contactSuccessMessage,
		Data: contactReceiptData{
			ID:        receipt.ID,
			Timestamp: receipt.Timestamp,
		},
	})
}

func writeContactError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contact.ErrRateLimited):
		httpx.WriteError(ctx, w, httpx.NewError("Too many requests", "Please wait a moment before sending another message.", http.StatusTooManyRequests))
	case errors.Is(err, contact.ErrMalformedRequest):
		httpx.WriteError(ctx, w, httpx.NewError("Invalid request data", "The request could not be read. Please check the submitted data.", http.StatusBadRequest))
	case errors.Is(err, contact.ErrSpamDetected):
		httpx.WriteError(ctx, w, httpx.NewError("Spam detected", "Your submission was flagged as spam.", http.StatusUnprocessableEntity))
	case errors.Is(err, contact.ErrInvalidTiming):
		httpx.WriteError(ctx, w, httpx.NewError("Invalid submission timing", "Please take a moment to fill in the form and try again.", http.StatusUnprocessableEntity))
	case errors.Is(err, contact.ErrInvalidForm):
		httpx.WriteError(ctx, w, httpx.NewError("Invalid form data", "Please check your name, email and message.", http.StatusBadRequest))
	default:
		requestctx.Logger(ctx).Error("contact submission failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.InternalError())
	}
}

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	if limit <= 0 {
		limit = defaultMaxContactBodySize
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}
