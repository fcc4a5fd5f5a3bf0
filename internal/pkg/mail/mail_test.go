package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_Recipients(t *testing.T) {
	msg := Message{
		To:  []string{"voter@example.com"},
		Cc:  []string{"observer@example.com"},
		Bcc: []string{"audit@example.com"},
	}

	assert.Equal(t, []string{
		"voter@example.com",
		"observer@example.com",
		"audit@example.com",
	}, msg.Recipients())
}

func TestMessage_RecipientsEmpty(t *testing.T) {
	assert.Empty(t, Message{}.Recipients())
}
