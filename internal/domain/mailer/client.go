// internal/domain/mailer/client.go
package mailer

import "context"

// Attachment is a fully buffered binary document attached to a message.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Message is one outbound email.
type Message struct {
	From       string
	FromName   string
	To         string
	ToName     string
	Subject    string
	HTMLBody   string
	Attachment *Attachment // optional
}

// Outcome is the transport's verdict for one send attempt. A non-success
// outcome carries whatever classification material the transport exposes; the
// engine decides transient vs permanent, never the transport.
type Outcome struct {
	Success      bool
	ErrorCode    string
	ErrorMessage string
}

// Client defines an interface for sending messages through the external mail
// transport. It decouples the application logic from the SMTP library.
type Client interface {
	Send(ctx context.Context, msg Message) Outcome
}
