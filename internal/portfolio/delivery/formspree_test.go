package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
	"github.com/argenis972/portfolio-backend/internal/requestctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMessage = domain.ContactMessage{
	SenderName:  "Maria Silva",
	SenderEmail: "maria@example.com",
	Subject:     "Proposta de trabalho",
	Body:        "Olá, gostaria de conversar sobre uma vaga.",
}

func requireReason(t *testing.T, err error, reason string) *DeliveryError {
	t.Helper()
	var de *DeliveryError
	require.True(t, errors.As(err, &de), "expected *DeliveryError, got %v", err)
	assert.Equal(t, reason, de.Reason)
	assert.Equal(t, reason, de.DeliveryReason())
	return de
}

func TestFormspreeSender_Deliver(t *testing.T) {
	var got payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/f/abc123", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	sender := NewFormspreeSender(server.URL+"/f/", "abc123", time.Second)
	require.NoError(t, sender.Deliver(context.Background(), testMessage))

	assert.Equal(t, payload{
		Name:    "Maria Silva",
		Email:   "maria@example.com",
		Subject: "Proposta de trabalho",
		Message: "Olá, gostaria de conversar sobre uma vaga.",
	}, got)
}

func TestFormspreeSender_AnyTwoHundredSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewFormspreeSender(server.URL, "form", time.Second)
	assert.NoError(t, sender.Deliver(context.Background(), testMessage))
}

func TestFormspreeSender_NotConfigured(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	sender := NewFormspreeSender(server.URL, "", time.Second)
	assert.False(t, sender.Configured())

	err := sender.Deliver(context.Background(), testMessage)
	requireReason(t, err, ReasonNotConfigured)
	assert.Zero(t, atomic.LoadInt32(&hits), "no request may be sent without a form id")
}

func TestFormspreeSender_Status(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		sender := NewFormspreeSender(server.URL, "form", time.Second)
		err := sender.Deliver(context.Background(), testMessage)
		de := requireReason(t, err, ReasonStatus)
		assert.Equal(t, status, de.StatusCode)
		assert.Contains(t, de.Error(), "status")
		server.Close()
	}
}

func TestFormspreeSender_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	sender := NewFormspreeSender(server.URL, "form", 50*time.Millisecond)
	err := sender.Deliver(context.Background(), testMessage)
	requireReason(t, err, ReasonTimeout)
}

func TestFormspreeSender_RequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	sender := NewFormspreeSender(url, "form", time.Second)
	de := requireReason(t, sender.Deliver(context.Background(), testMessage), ReasonRequest)
	assert.Error(t, errors.Unwrap(de))
}

func TestNewFormspreeSender_DefaultTimeout(t *testing.T) {
	sender := NewFormspreeSender("https://formspree.io/f", "x", 0)
	assert.Equal(t, DefaultTimeout, sender.client.Timeout)
}

func TestFormspreeSender_RateLimit(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	sender := NewFormspreeSender(server.URL, "form", 50*time.Millisecond).WithRateLimit(1, 1)
	require.NoError(t, sender.Deliver(context.Background(), testMessage))

	err := sender.Deliver(context.Background(), testMessage)
	requireReason(t, err, ReasonRateLimited)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "throttled messages never reach Formspree")
}

func TestFormspreeSender_RateLimitDisabled(t *testing.T) {
	sender := NewFormspreeSender("https://formspree.io/f", "x", 0).WithRateLimit(0, 5)
	assert.Nil(t, sender.limiter)
}

func TestFormspreeSender_ForwardsRequestID(t *testing.T) {
	got := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("X-Request-ID")
	}))
	defer server.Close()

	sender := NewFormspreeSender(server.URL, "form", time.Second)

	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{ID: "req-42", StartedAt: time.Now()})
	require.NoError(t, sender.Deliver(ctx, testMessage))
	assert.Equal(t, "req-42", <-got)

	require.NoError(t, sender.Deliver(context.Background(), testMessage))
	assert.Empty(t, <-got, "no header without a request in flight")
}
