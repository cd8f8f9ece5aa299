package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageID(t *testing.T) {
	fixtures := []struct {
		id     MessageID
		zero   bool
		output string
	}{
		{MessageID{}, true, ""},
		{NewMessageIDFromSeq(0), true, ""},
		{NewMessageIDFromSeq(12), false, "12"},
		{NewMessageIDFromKey(""), true, ""},
		{NewMessageIDFromKey("1666.M1P2.host"), false, "1666.M1P2.host"},
	}
	for _, fixture := range fixtures {
		assert.Equal(t, fixture.zero, fixture.id.IsZero())
		assert.Equal(t, fixture.output, fixture.id.String())
	}
}
