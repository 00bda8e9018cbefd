package services

import (
	"fmt"
	"html"
	"os"
	"strings"

	"charter-api/config"
	"charter-api/models"
)

// notifyRecipients reads the comma-separated admin notification list from
// the environment.
func notifyRecipients() []string {
	raw := os.Getenv("ADMIN_NOTIFY_EMAILS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// NotifyNewQuote emails the admin team about a fresh quote request. A silent
// no-op when no recipients are configured.
func NotifyNewQuote(quote models.Quote) error {
	to := notifyRecipients()
	if len(to) == 0 {
		return nil
	}

	subject := fmt.Sprintf("New quote request %s: %s → %s", quote.Reference, quote.Origin, quote.Destination)
	var b strings.Builder
	b.WriteString("<h2>New quote request</h2>")
	fmt.Fprintf(&b, "<p><b>Reference:</b> %s</p>", html.EscapeString(quote.Reference))
	fmt.Fprintf(&b, "<p><b>From:</b> %s &lt;%s&gt;</p>", html.EscapeString(quote.FullName), html.EscapeString(quote.Email))
	fmt.Fprintf(&b, "<p><b>Route:</b> %s → %s</p>", html.EscapeString(quote.Origin), html.EscapeString(quote.Destination))
	fmt.Fprintf(&b, "<p><b>Departure:</b> %s</p>", quote.DepartureDate.Format("2006-01-02"))
	if quote.ReturnDate != nil {
		fmt.Fprintf(&b, "<p><b>Return:</b> %s</p>", quote.ReturnDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "<p><b>Passengers:</b> %d</p>", quote.Passengers)
	if quote.Message != nil && *quote.Message != "" {
		fmt.Fprintf(&b, "<p><b>Message:</b> %s</p>", html.EscapeString(*quote.Message))
	}

	return config.SendMail(to, subject, b.String())
}

// NotifyNewContact emails the admin team about a fresh contact submission.
func NotifyNewContact(contact models.Contact) error {
	to := notifyRecipients()
	if len(to) == 0 {
		return nil
	}

	subject := fmt.Sprintf("New contact message %s: %s", contact.Reference, contact.Subject)
	var b strings.Builder
	b.WriteString("<h2>New contact message</h2>")
	fmt.Fprintf(&b, "<p><b>Reference:</b> %s</p>", html.EscapeString(contact.Reference))
	fmt.Fprintf(&b, "<p><b>From:</b> %s &lt;%s&gt;</p>", html.EscapeString(contact.FullName), html.EscapeString(contact.Email))
	fmt.Fprintf(&b, "<p><b>Subject:</b> %s</p>", html.EscapeString(contact.Subject))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(contact.Message))

	return config.SendMail(to, subject, b.String())
}
