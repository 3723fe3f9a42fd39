package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/jdevop33/NorthKoreanUnity/libs/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailProvider struct {
	sent []mailer.Message
	err  error
}

func (p *captureMailProvider) Name() string { return "capture" }

func (p *captureMailProvider) Send(msg mailer.Message) (mailer.SendResult, error) {
	if p.err != nil {
		return mailer.SendResult{}, p.err
	}
	p.sent = append(p.sent, msg)
	return mailer.SendResult{ProviderMessageID: "capture-1"}, nil
}

func TestContactHandlerForwardsSubmission(t *testing.T) {
	app, router := newTestApp(t)
	provider := &captureMailProvider{}
	app.mailer = mailer.New(provider, "noreply@example.org")

	body := `{"name":"Jane Visitor","email":"jane@example.com","message":"I would like to know more about the exhibit."}`
	w := doJSON(t, router, http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		OK        bool   `json:"ok"`
		Reference string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.Reference)

	require.Len(t, provider.sent, 1)
	msg := provider.sent[0]
	assert.Equal(t, []string{"inbox@example.org"}, msg.To)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "Jane Visitor")
	assert.Contains(t, msg.Text, "I would like to know more")
	assert.Contains(t, msg.Text, resp.Reference)
}

func TestContactHandlerHoneypotRejection(t *testing.T) {
	app, router := newTestApp(t)
	provider := &captureMailProvider{}
	app.mailer = mailer.New(provider, "noreply@example.org")

	body := `{"name":"Bot","email":"bot@example.com","message":"buy cheap things now!","_gotcha":"filled"}`
	w := doJSON(t, router, http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "rejected")
	assert.Empty(t, provider.sent)
}

func TestContactHandlerValidation(t *testing.T) {
	_, router := newTestApp(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short name", `{"name":"J","email":"j@example.com","message":"long enough message"}`, "name"},
		{"bad email", `{"name":"Jane","email":"not-an-email","message":"long enough message"}`, "email"},
		{"short message", `{"name":"Jane","email":"j@example.com","message":"short"}`, "message"},
		{"long message", `{"name":"Jane","email":"j@example.com","message":"` + strings.Repeat("a", 1001) + `"}`, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/contact", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body struct {
				Details map[string]string `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body.Details, tt.field)
		})
	}
}

func TestContactHandlerDeliveryFailure(t *testing.T) {
	app, router := newTestApp(t)
	app.mailer = mailer.New(&captureMailProvider{err: assert.AnError}, "noreply@example.org")

	body := `{"name":"Jane","email":"jane@example.com","message":"a perfectly valid message"}`
	w := doJSON(t, router, http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "delivery_failed")
}

func TestContactHandlerEscapesHTML(t *testing.T) {
	app, router := newTestApp(t)
	provider := &captureMailProvider{}
	app.mailer = mailer.New(provider, "noreply@example.org")

	body := `{"name":"<script>x</script>","email":"jane@example.com","message":"hello <b>world</b> this is long enough"}`
	w := doJSON(t, router, http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Len(t, provider.sent, 1)
	assert.NotContains(t, provider.sent[0].HTML, "<script>")
	assert.Contains(t, provider.sent[0].HTML, "&lt;script&gt;")
}
