package main

import (
	"fmt"
	"html"
	"net/http"
	"net/mail"
	"strings"

	"github.com/jdevop33/NorthKoreanUnity/libs/mailer"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contactNameMinLength    = 2
	contactNameMaxLength    = 100
	contactMessageMinLength = 10
	contactMessageMaxLength = 1000
)

type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	// Honeypot field rendered invisibly on the form; humans leave it empty.
	Gotcha string `json:"_gotcha"`
}

// contactHandler validates a contact-form submission and forwards it to the
// site inbox through the mail relay.
// POST /api/contact
func (a *App) contactHandler(c *gin.Context) {
	var payload ContactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid contact payload"})
		return
	}

	if strings.TrimSpace(payload.Gotcha) != "" {
		a.log.Info("contact submission rejected by honeypot", "ip", c.ClientIP())
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "rejected", Message: "Form submission rejected"})
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)

	if fields := validateContactPayload(payload); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact form data", "details": fields})
		return
	}

	reference := uuid.New().String()
	msg := buildContactEmail(payload, reference, a.cfg.ContactEmailTo)

	if _, err := a.mailer.Send(msg); err != nil {
		a.log.Error("failed to forward contact submission", "reference", reference, "err", err)
		writeAPIError(c, &apiError{Status: http.StatusBadGateway, Code: "delivery_failed", Message: "Message could not be delivered, please try again later"})
		return
	}

	a.log.Info("contact submission forwarded", "reference", reference)
	c.JSON(http.StatusAccepted, gin.H{"ok": true, "reference": reference})
}

func validateContactPayload(p ContactPayload) map[string]string {
	fields := map[string]string{}

	switch n := len([]rune(p.Name)); {
	case n < contactNameMinLength:
		fields["name"] = "must be at least 2 characters"
	case n > contactNameMaxLength:
		fields["name"] = "must be 100 characters or less"
	}

	if _, err := mail.ParseAddress(p.Email); err != nil {
		fields["email"] = "must be a valid email address"
	}

	switch n := len([]rune(p.Message)); {
	case n < contactMessageMinLength:
		fields["message"] = "must be at least 10 characters"
	case n > contactMessageMaxLength:
		fields["message"] = "must be 1000 characters or less"
	}

	return fields
}

func buildContactEmail(p ContactPayload, reference, to string) mailer.Message {
	name := html.EscapeString(p.Name)
	email := html.EscapeString(p.Email)
	body := html.EscapeString(p.Message)

	htmlBody := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; line-height: 1.6; color: #333;">
			<h2>New contact form submission</h2>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p style="white-space: pre-wrap; border-left: 3px solid #ccc; padding-left: 12px;">%s</p>
			<hr style="margin-top: 40px; border: 0; border-top: 1px solid #eee;" />
			<p style="font-size: 12px; color: #999;">Reference: %s</p>
		</div>
	`, name, email, body, reference)

	text := fmt.Sprintf(
		"New contact form submission\n\nName: %s\nEmail: %s\n\n%s\n\nReference: %s",
		p.Name, p.Email, p.Message, reference,
	)

	return mailer.Message{
		ReplyTo: p.Email,
		To:      []string{to},
		Subject: fmt.Sprintf("Contact form: %s", p.Name),
		HTML:    htmlBody,
		Text:    text,
	}
}
