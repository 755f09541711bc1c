package ledger

import (
	"container/heap"
	"fmt"
	"sync"

	"github.com/Domenick1991/skybook/internal/domain"
)

// Less reports whether a must be listed before b: higher cabin class first,
// then earlier issuance. Identical timestamps fall back to ticket id so the
// order is total.
func Less(a, b domain.Ticket) bool {
	if ra, rb := a.CabinClass.Rank(), b.CabinClass.Rank(); ra != rb {
		return ra > rb
	}
	if !a.IssuedAt.Equal(b.IssuedAt) {
		return a.IssuedAt.Before(b.IssuedAt)
	}
	return a.ID < b.ID
}

// ticketHeap is a min-heap under Less. Implements container/heap.Interface.
type ticketHeap []domain.Ticket

func (h ticketHeap) Len() int           { return len(h) }
func (h ticketHeap) Less(i, j int) bool { return Less(h[i], h[j]) }
func (h ticketHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *ticketHeap) Push(x any)        { *h = append(*h, x.(domain.Ticket)) }
func (h *ticketHeap) Pop() any {
	old := *h
	t := old[len(old)-1]
	*h = old[:len(old)-1]
	return t
}

// Ledger holds every issued ticket and lists them in priority order.
// Insert takes the exclusive lock; snapshots share a read lock.
type Ledger struct {
	mu      sync.RWMutex
	tickets ticketHeap
	ids     map[string]struct{}
}

func New() *Ledger {
	return &Ledger{ids: make(map[string]struct{})}
}

func (l *Ledger) Insert(t domain.Ticket) error {
	if t.ID == "" {
		return fmt.Errorf("%w: ticket has no id", domain.ErrInvariantViolation)
	}
	if !t.CabinClass.Valid() {
		return fmt.Errorf("%w: ticket %s has no cabin class", domain.ErrInvariantViolation, t.ID)
	}
	if t.IssuedAt.IsZero() {
		return fmt.Errorf("%w: ticket %s has no issue time", domain.ErrInvariantViolation, t.ID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.ids[t.ID]; dup {
		return fmt.Errorf("%w: duplicate ticket id %s", domain.ErrInvariantViolation, t.ID)
	}
	l.ids[t.ID] = struct{}{}
	heap.Push(&l.tickets, t)
	return nil
}

// Snapshot returns every ticket in priority order. The result is a copy;
// later inserts do not affect it.
func (l *Ledger) Snapshot() []domain.Ticket {
	return l.drain(func(domain.Ticket) bool { return true })
}

// SnapshotFor is Snapshot restricted to tickets the caller may see.
func (l *Ledger) SnapshotFor(callerEmail string, privileged bool) []domain.Ticket {
	return l.drain(func(t domain.Ticket) bool { return t.VisibleTo(callerEmail, privileged) })
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tickets)
}

// drain pops a copy of the heap, so the ledger itself is never consumed.
func (l *Ledger) drain(keep func(domain.Ticket) bool) []domain.Ticket {
	l.mu.RLock()
	work := make(ticketHeap, len(l.tickets))
	copy(work, l.tickets)
	l.mu.RUnlock()

	out := make([]domain.Ticket, 0, len(work))
	for work.Len() > 0 {
		t := heap.Pop(&work).(domain.Ticket)
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
