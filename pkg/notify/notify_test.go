package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Notification {
	return &Notification{
		Name:       "Ada",
		Email:      "ada@example.com",
		Message:    "Loved the Lucali review.",
		ReceivedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWebhookSendsSignedPayload(t *testing.T) {
	var gotBody []byte
	var gotSig, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get("X-Signature-256")
		gotType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "topsecret")
	require.NoError(t, wh.Send(context.Background(), sample()))

	assert.Equal(t, "application/json", gotType)

	var decoded Notification
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "ada@example.com", decoded.Email)

	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write(gotBody)
	assert.Equal(t, "sha256="+hex.EncodeToString(mac.Sum(nil)), gotSig)
}

func TestWebhookNoSecretNoSignature(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Signature-256")
	}))
	defer srv.Close()

	require.NoError(t, NewWebhook(srv.URL, "").Send(context.Background(), sample()))
	assert.Empty(t, gotSig)
}

func TestWebhookNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, "").Send(context.Background(), sample())
	assert.ErrorContains(t, err, "502")
}

func TestSlackSendsBlocks(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
	}))
	defer srv.Close()

	require.NoError(t, NewSlack(srv.URL).Send(context.Background(), sample()))
	blocks, ok := got["blocks"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, blocks)
}

func TestDiscordSendsEmbed(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
	}))
	defer srv.Close()

	require.NoError(t, NewDiscord(srv.URL).Send(context.Background(), sample()))
	embeds, ok := got["embeds"].([]any)
	require.True(t, ok)
	require.Len(t, embeds, 1)
}

type stubNotifier struct {
	name string
	err  error
	sent int
}

func (s *stubNotifier) Name() string { return s.name }

func (s *stubNotifier) Send(ctx context.Context, n *Notification) error {
	s.sent++
	return s.err
}

func TestManagerBroadcast(t *testing.T) {
	a := &stubNotifier{name: "a"}
	b := &stubNotifier{name: "b", err: assert.AnError}
	c := &stubNotifier{name: "c"}
	m := NewManager([]Notifier{a, b, c})

	err := m.Broadcast(context.Background(), sample())
	require.Error(t, err)
	assert.ErrorContains(t, err, "b:")

	// One failing destination never blocks the others.
	assert.Equal(t, 1, a.sent)
	assert.Equal(t, 1, c.sent)
}

func TestManagerHasNotifiers(t *testing.T) {
	assert.False(t, NewManager(nil).HasNotifiers())
	assert.True(t, NewManager([]Notifier{&stubNotifier{name: "x"}}).HasNotifiers())

	var nilManager *Manager
	assert.False(t, nilManager.HasNotifiers())
}
