// internal/infra/mailer/smtp_client.go
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	domainMailer "shop_notifier/internal/domain/mailer"

	gomail "github.com/wneessen/go-mail"
)

// Transport error codes surfaced to the failure classifier. Envelope and
// connection level codes are the ones the default classifier treats as
// transient.
const (
	CodeConnection = "ECONNECTION"
	CodeEnvelope   = "EENVELOPE"
	CodeMessage    = "EMESSAGE"
)

// SMTPClient implements the domain mailer.Client interface on top of
// github.com/wneessen/go-mail.
type SMTPClient struct {
	client *gomail.Client
}

func NewSMTPClient(host string, port int, username, password string) (*SMTPClient, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &SMTPClient{client: client}, nil
}

// Send delivers one message and reports the outcome. Errors are never
// returned; they are folded into the outcome so the caller always classifies.
func (c *SMTPClient) Send(ctx context.Context, msg domainMailer.Message) domainMailer.Outcome {
	m := gomail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.From); err != nil {
		return outcomeFromError(CodeEnvelope, err)
	}
	if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
		return outcomeFromError(CodeEnvelope, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)
	if msg.Attachment != nil {
		err := m.AttachReader(msg.Attachment.Filename, bytes.NewReader(msg.Attachment.Content),
			gomail.WithFileContentType(gomail.ContentType(msg.Attachment.MIMEType)))
		if err != nil {
			return outcomeFromError(CodeMessage, err)
		}
	}

	if err := c.client.DialAndSendWithContext(ctx, m); err != nil {
		return outcomeFromError(classifySendErrorCode(err), err)
	}
	return domainMailer.Outcome{Success: true}
}

// classifySendErrorCode maps the library's send error reasons onto the
// engine's coarse code set. Unknown reasons carry no code and are judged on
// the error message alone.
func classifySendErrorCode(err error) string {
	var sendErr *gomail.SendError
	if !errors.As(err, &sendErr) {
		return "" // dial/context failures surface untyped; judge by message
	}
	switch sendErr.Reason {
	case gomail.ErrConnCheck:
		return CodeConnection
	case gomail.ErrGetSender, gomail.ErrGetRcpts, gomail.ErrSMTPMailFrom, gomail.ErrSMTPRcptTo:
		return CodeEnvelope
	case gomail.ErrSMTPData, gomail.ErrSMTPDataClose, gomail.ErrWriteContent:
		return CodeMessage
	}
	return ""
}

func outcomeFromError(code string, err error) domainMailer.Outcome {
	return domainMailer.Outcome{
		Success:      false,
		ErrorCode:    code,
		ErrorMessage: err.Error(),
	}
}
