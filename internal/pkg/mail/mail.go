package mail

import (
	"context"
	"io"
)

// Message is one outbound email. The notification consumers fill it with
// rendered verification-code and vote-receipt bodies; nothing in it is tied
// to a particular delivery backend.
type Message struct {
	// From overrides the configured default sender when set.
	From string
	// To carries the voter's address. Multiple entries are allowed for
	// operational mail.
	To []string
	// Cc and Bcc are extra recipient lists, usually empty for voter mail.
	Cc  []string
	Bcc []string
	// Subject is the subject line.
	Subject string
	// TextBody always accompanies HTMLBody so clients that strip HTML still
	// show the code or receipt.
	TextBody string
	// HTMLBody is the rendered template output, optional.
	HTMLBody string
}

// Recipients flattens To, Cc and Bcc into the envelope recipient list.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	out = append(out, m.Bcc...)
	return out
}

// Mail delivers messages. The process owns the sender's lifecycle, hence the
// io.Closer.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
