package mailbox

import "strconv"

// MessageID identifies a message inside the selected mailbox: IMAP sequence
// numbers are numeric, Maildir keys are strings.
type MessageID struct {
	seq uint32
	key string
}

func NewMessageIDFromSeq(seq uint32) MessageID {
	return MessageID{
		seq: seq,
	}
}

func NewMessageIDFromKey(key string) MessageID {
	return MessageID{
		key: key,
	}
}

func (i MessageID) IsZero() bool {
	return i.seq == 0 && i.key == ""
}

func (i MessageID) Seq() uint32 {
	return i.seq
}

func (i MessageID) Key() string {
	return i.key
}

func (i MessageID) String() string {
	if i.seq > 0 {
		return strconv.FormatUint(uint64(i.seq), 10)
	}
	return i.key
}
