package status

import (
	"sort"
	"strings"
	"time"
)

type State string

const (
	Pending  State = "pending"
	Complete State = "complete"
)

// Entry is the state of one recipient
type Entry struct {
	Status      State      `json:"status"`
	LastChecked *time.Time `json:"last_checked"`
}

// Store maps a recipient address to its entry.
type Store map[string]Entry

// New returns a store with a pending entry for each non-blank address
func New(recipients []string) Store {
	store := make(Store, len(recipients))
	for _, address := range recipients {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		store[address] = Entry{Status: Pending}
	}
	return store
}

// Clone returns a deep copy of the store
func (s Store) Clone() Store {
	clone := make(Store, len(s))
	for address, entry := range s {
		if entry.LastChecked != nil {
			lastChecked := *entry.LastChecked
			entry.LastChecked = &lastChecked
		}
		clone[address] = entry
	}
	return clone
}

// Ensure returns the entry for address, inserting a pending one when missing
func (s Store) Ensure(address string) Entry {
	entry, found := s[address]
	if !found {
		entry = Entry{Status: Pending}
		s[address] = entry
	}
	return entry
}

// Touch records the last time a notice was sent to address.
func (s Store) Touch(address string, at time.Time) {
	entry := s.Ensure(address)
	entry.LastChecked = &at
	s[address] = entry
}

// Complete marks a known address as complete. It returns false when the address is unknown.
// There's no way back to pending.
func (s Store) Complete(address string) bool {
	entry, found := s[address]
	if !found {
		return false
	}
	entry.Status = Complete
	s[address] = entry
	return true
}

// Pending returns the sorted list of addresses still waiting for a response
func (s Store) Pending() []string {
	pending := make([]string, 0, len(s))
	for address, entry := range s {
		if entry.Status == Pending {
			pending = append(pending, address)
		}
	}
	sort.Strings(pending)
	return pending
}

// Addresses returns all the addresses in the store, sorted
func (s Store) Addresses() []string {
	addresses := make([]string, 0, len(s))
	for address := range s {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}
