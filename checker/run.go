package checker

import "github.com/creativeprojects/mailcheck/status"

// Run scans the replies, then sends the notice to everyone still pending.
// It returns the updated store and the sorted list of pending recipients.
func Run(store status.Store, scanner *Scanner, notifier *Notifier, recipients []string) (status.Store, []string, error) {
	store, err := scanner.Scan(store)
	if err != nil {
		return store, nil, err
	}
	store, err = notifier.Send(store, recipients)
	if err != nil {
		return store, nil, err
	}
	return store, store.Pending(), nil
}
