package alert

import "sync"

// DismissalTracker records which tickets the operator has suppressed from
// full-screen escalation. Membership only grows; the set is cleared by
// process restart, never by time or ticket mutation. Entries for tickets
// that have since left stage 1 or been deleted simply go stale and are
// harmless on lookup.
type DismissalTracker struct {
	mu        sync.Mutex
	dismissed map[string]struct{}
}

// NewDismissalTracker returns an empty tracker.
func NewDismissalTracker() *DismissalTracker {
	return &DismissalTracker{dismissed: make(map[string]struct{})}
}

// Dismiss suppresses one ticket. Idempotent.
func (t *DismissalTracker) Dismiss(ticketID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dismissed[ticketID] = struct{}{}
}

// DismissAll suppresses a batch of tickets and returns the batch size for
// user feedback. Ids already dismissed are counted again; the count is the
// nominal batch size, not the number of newly added ids.
func (t *DismissalTracker) DismissAll(ticketIDs []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ticketIDs {
		t.dismissed[id] = struct{}{}
	}
	return len(ticketIDs)
}

// IsDismissed reports whether the ticket has been suppressed.
func (t *DismissalTracker) IsDismissed(ticketID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.dismissed[ticketID]
	return ok
}

// Size returns the number of suppressed tickets, for logging.
func (t *DismissalTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.dismissed)
}
