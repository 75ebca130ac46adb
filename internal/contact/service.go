package contact

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxLocaleLength = 5

// ServiceDeps bundles constructor inputs for the intake service.
type ServiceDeps struct {
	Window TimingWindow
	// ProcessingDelay is waited out before answering an accepted submission.
	// Zero disables it.
	ProcessingDelay time.Duration
	Notifier        Notifier
	// Limiter caps submissions per client IP. Nil disables it.
	Limiter         *Limiter
	Logger          *zap.Logger
	Clock           func() time.Time
	NewID           func() string
}

// Service runs the contact intake pipeline. It keeps no state between calls.
type Service struct {
	window   TimingWindow
	delay    time.Duration
	notifier Notifier
	limiter  *Limiter
	logger   *zap.Logger
	clock    func() time.Time
	newID    func() string
}

// NewService constructs the intake service.
func NewService(deps ServiceDeps) (*Service, error) {
	if deps.Window.Max <= 0 || deps.Window.Min < 0 || deps.Window.Min > deps.Window.Max {
		return nil, fmt.Errorf("contact service: invalid timing window %s..%s", deps.Window.Min, deps.Window.Max)
	}
	if deps.ProcessingDelay < 0 {
		return nil, errors.New("contact service: processing delay must not be negative")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		window:   deps.Window,
		delay:    deps.ProcessingDelay,
		notifier: notifier,
		limiter:  deps.Limiter,
		logger:   logger,
		clock:    func() time.Time { return clock().UTC() },
		newID:    newID,
	}, nil
}

// Admit charges one submission attempt to the caller's client IP and returns
// ErrRateLimited once the caller is over budget. Handlers call it before
// reading the body so throttled clients cost nothing further.
func (s *Service) Admit(meta RequestMeta) error {
	if s.limiter.Admit(meta.ClientIP, s.clock()) {
		return nil
	}
	s.logger.Info("contact submission rejected",
		zap.String("reason", "rate_limit"),
		zap.String("remote_ip", meta.ClientIP),
	)
	return ErrRateLimited
}

// Submit checks, cleans, records and forwards one submission. A payload
// without the form keys is rejected first; after that rejections follow a
// fixed order (honeypot, timing, field rules) as one of the package sentinel
// errors. Any other error is internal.
func (s *Service) Submit(ctx context.Context, payload Payload, meta RequestMeta) (Receipt, error) {
	if payload == nil {
		return Receipt{}, ErrMalformedRequest
	}
	if !payload.hasFormFields() {
		return Receipt{}, ErrInvalidForm
	}

	now := s.clock()
	if HoneypotTriggered(payload) {
		s.logger.Info("contact submission rejected",
			zap.String("reason", "honeypot"),
			zap.String("remote_ip", meta.ClientIP),
		)
		return Receipt{}, ErrSpamDetected
	}
	if !s.window.Allows(payload, now) {
		s.logger.Info("contact submission rejected",
			zap.String("reason", "timing"),
			zap.String("remote_ip", meta.ClientIP),
		)
		return Receipt{}, ErrInvalidTiming
	}
	if !Validate(payload) {
		return Receipt{}, ErrInvalidForm
	}

	sub := s.sanitize(payload, now)

	s.logger.Info("contact submission received",
		zap.String("submission_id", sub.ID),
		zap.String("name", sub.Name),
		zap.String("email", sub.Email),
		zap.String("message", sub.Message),
		zap.String("locale", sub.Locale),
		zap.Int64("client_timestamp", sub.ClientTimestamp),
		zap.String("remote_ip", meta.ClientIP),
		zap.String("user_agent", meta.UserAgent),
	)

	if err := s.notifier.Notify(ctx, sub); err != nil {
		return Receipt{}, fmt.Errorf("contact: notify %s: %w", sub.ID, err)
	}
	if err := s.wait(ctx); err != nil {
		return Receipt{}, fmt.Errorf("contact: processing %s: %w", sub.ID, err)
	}

	return Receipt{ID: sub.ID, Timestamp: sub.ReceivedAt.UnixMilli()}, nil
}

func (s *Service) sanitize(payload Payload, now time.Time) Submission {
	sub := Submission{
		ID:         s.newID(),
		Name:       strings.TrimSpace(payload.str("name")),
		Email:      strings.ToLower(strings.TrimSpace(payload.str("email"))),
		Message:    strings.TrimSpace(payload.str("message")),
		ReceivedAt: now,
	}
	if ts, ok := payload["timestamp"].(float64); ok {
		sub.ClientTimestamp = int64(math.Round(ts))
	}
	if locale := strings.ToLower(strings.TrimSpace(payload.str("locale"))); locale != "" && len(locale) <= maxLocaleLength {
		sub.Locale = locale
	}
	return sub
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
