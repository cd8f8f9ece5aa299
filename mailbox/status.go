package mailbox

type Status struct {
	// The mailbox name.
	Name string
	// The number of messages in this mailbox.
	Messages uint32
}

// PrimaryMailbox is the mailbox scanned for automatic replies
const PrimaryMailbox = "INBOX"
