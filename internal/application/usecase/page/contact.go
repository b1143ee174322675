package page

import (
	"github.com/rediet/portfolio/pkg/markup"
)

// ContactSubmission is what the visitor typed into the contact form.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// ComposeContact builds the mailto URL the contact form hands off to the
// visitor's mail client. Fields are used as typed; only an empty name falls
// back to "someone". The sender email is not validated.
func ComposeContact(ownerEmail string, s ContactSubmission) string {
	sender := s.Name
	if sender == "" {
		sender = "someone"
	}

	subject := "Portfolio inquiry from " + sender
	body := "From: " + s.Name + " <" + s.Email + ">\r\n\r\n" + s.Message
	return markup.Mailto(ownerEmail, subject, body)
}
