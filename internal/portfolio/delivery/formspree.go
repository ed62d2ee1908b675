// Package delivery relays contact messages to Formspree.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
	"github.com/argenis972/portfolio-backend/internal/requestctx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 10 * time.Second

// Failure reasons carried by DeliveryError.
const (
	ReasonNotConfigured = "not_configured"
	ReasonRequest       = "request"
	ReasonTimeout       = "timeout"
	ReasonStatus        = "status"
	ReasonRateLimited   = "rate_limited"
)

// DeliveryError explains why a message was not delivered.
type DeliveryError struct {
	Reason     string
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("formspree delivery failed (%s): status %d", e.Reason, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("formspree delivery failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("formspree delivery failed (%s)", e.Reason)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) DeliveryReason() string { return e.Reason }

type payload struct {
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Subject string `json:"assunto"`
	Message string `json:"mensagem"`
}

// FormspreeSender posts contact messages to <baseURL>/<formID>.
type FormspreeSender struct {
	baseURL string
	formID  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewFormspreeSender builds a sender. A zero timeout means DefaultTimeout.
func NewFormspreeSender(baseURL, formID string, timeout time.Duration) *FormspreeSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FormspreeSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		formID:  formID,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithRateLimit caps outbound relays at perMinute with the given burst.
// A non-positive perMinute leaves the sender unthrottled.
func (s *FormspreeSender) WithRateLimit(perMinute, burst int) *FormspreeSender {
	if perMinute <= 0 {
		s.limiter = nil
		return s
	}
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	return s
}

// Configured reports whether a form id is set.
func (s *FormspreeSender) Configured() bool {
	return s.formID != ""
}

// Deliver makes a single attempt; any 2xx response counts as delivered.
func (s *FormspreeSender) Deliver(ctx context.Context, msg domain.ContactMessage) error {
	logger := logging.FromContext(ctx)
	if !s.Configured() {
		logger.Warn("Formspree form id não configurado")
		return &DeliveryError{Reason: ReasonNotConfigured}
	}

	if s.limiter != nil {
		wctx, cancel := context.WithTimeout(ctx, s.client.Timeout)
		err := s.limiter.Wait(wctx)
		cancel()
		if err != nil {
			logger.Warn("Limite de envios para o Formspree atingido", zap.Error(err))
			return &DeliveryError{Reason: ReasonRateLimited, Err: err}
		}
	}

	body, err := json.Marshal(payload{
		Name:    msg.SenderName,
		Email:   msg.SenderEmail,
		Subject: msg.Subject,
		Message: msg.Body,
	})
	if err != nil {
		return &DeliveryError{Reason: ReasonRequest, Err: fmt.Errorf("encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+s.formID, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Reason: ReasonRequest, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := requestctx.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		reason := ReasonRequest
		if isTimeout(err) {
			reason = ReasonTimeout
		}
		logger.Error("Erro ao enviar email via Formspree",
			zap.String("motivo", reason),
			zap.Duration("duracao", time.Since(start)),
			zap.Error(err),
		)
		return &DeliveryError{Reason: reason, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Formspree retornou status inesperado",
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duracao", time.Since(start)),
		)
		return &DeliveryError{Reason: ReasonStatus, StatusCode: resp.StatusCode}
	}

	logger.Info("Email enviado via Formspree", zap.Int("status_code", resp.StatusCode))
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
