package mailbox

type Message struct {
	// The message identifier in the selected mailbox.
	ID MessageID
	// The message size.
	Size uint32
	// The full message as received (RFC 5322).
	Raw []byte
}
