package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RoyKeane94/toad/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type blockingSender struct {
	release chan struct{}
}

func (s *blockingSender) Send(ctx context.Context, _ Message) error {
	select {
	case <-s.release:
	case <-ctx.Done():
	}
	return nil
}

func TestDispatcher_DrainsOnStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &recordingSender{}
	d := NewDispatcher(zap.NewNop().Sugar(), sender, 2, 10)

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Enqueue(Message{To: "a@example.com", Subject: "hi"}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
	require.Equal(t, 5, sender.count())

	require.ErrorIs(t, d.Enqueue(Message{To: "late@example.com"}), ErrStopped)
	require.NoError(t, d.Stop(ctx))
}

func TestDispatcher_QueueFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &blockingSender{release: make(chan struct{})}
	d := NewDispatcher(zap.NewNop().Sugar(), sender, 1, 1)

	require.Eventually(t, func() bool {
		return d.Enqueue(Message{To: "a@example.com"}) == ErrQueueFull
	}, time.Second, 5*time.Millisecond)

	close(sender.release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
}

func TestRelaySender_PostsJSON(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "Bearer relay-token", r.Header.Get("Authorization"))

		var body relayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Toad <hello@toad.app>", body.From)
		require.Equal(t, "b@example.com", body.To)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewRelaySender(config.MailConfig{From: "Toad <hello@toad.app>", HTTPURL: srv.URL, HTTPToken: "relay-token"}, zap.NewNop().Sugar())
	require.NoError(t, s.Send(context.Background(), Message{To: "b@example.com", Subject: "s", Body: "b"}))
	require.Equal(t, int32(1), hits.Load())
}

func TestRelaySender_ClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewRelaySender(config.MailConfig{HTTPURL: srv.URL}, zap.NewNop().Sugar())
	require.Error(t, s.Send(context.Background(), Message{To: "b@example.com"}))
}

func TestNew_SelectsTransport(t *testing.T) {
	log := zap.NewNop().Sugar()

	s, err := New(config.MailConfig{Transport: config.MailLog}, log)
	require.NoError(t, err)
	require.IsType(t, &LogSender{}, s)

	s, err = New(config.MailConfig{Transport: config.MailHTTP, HTTPURL: "http://relay"}, log)
	require.NoError(t, err)
	require.IsType(t, &RelaySender{}, s)

	s, err = New(config.MailConfig{Transport: config.MailSMTP, SMTPHost: "smtp.example.com", SMTPPort: 587, From: "a@example.com"}, log)
	require.NoError(t, err)
	require.IsType(t, &SMTPSender{}, s)

	_, err = New(config.MailConfig{Transport: "pigeon"}, log)
	require.Error(t, err)
}
