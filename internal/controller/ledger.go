package controller

import (
	"cmp"
	"slices"

	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/state"
)

type OpKind int

const (
	OpStatus OpKind = iota
	OpPriority
	OpCategory
	OpTags
)

func (k OpKind) String() string {
	switch k {
	case OpStatus:
		return "status"
	case OpPriority:
		return "priority"
	case OpCategory:
		return "category"
	case OpTags:
		return "tags"
	default:
		return "unknown"
	}
}

type ledgerKey struct {
	id   string
	kind OpKind
}

// pending tracks in-flight updates of one kind on one record. confirmed is
// the value the record holds on the server as far as we know; it is what a
// rollback restores. applied is what the latest operation put on screen.
type pending struct {
	confirmed models.Patch
	applied   models.Patch
	latest    uint64
	inflight  int
}

type ledger struct {
	seq     uint64
	entries map[ledgerKey]*pending
}

func newLedger() *ledger {
	return &ledger{entries: make(map[ledgerKey]*pending)}
}

// issue registers a new operation. before is captured only when nothing of
// the same kind is in flight, so it is the last confirmed value.
func (l *ledger) issue(id string, kind OpKind, before, applied models.Patch) uint64 {
	l.seq++
	key := ledgerKey{id, kind}
	p, ok := l.entries[key]
	if !ok {
		p = &pending{confirmed: before}
		l.entries[key] = p
	}
	p.applied = applied
	p.latest = l.seq
	p.inflight++
	return l.seq
}

// settle records a completed operation. It returns whether the operation
// is the latest of its kind, and the entry's confirmed value after the
// update. committed is nil on failure.
func (l *ledger) settle(id string, kind OpKind, seq uint64, committed models.Patch) (latest bool, confirmed models.Patch) {
	key := ledgerKey{id, kind}
	p, ok := l.entries[key]
	if !ok {
		return false, nil
	}
	if committed != nil {
		p.confirmed = committed
	}
	p.inflight--
	if p.inflight <= 0 {
		delete(l.entries, key)
	}
	return seq == p.latest, p.confirmed
}

func (l *ledger) inFlight(id string, kind OpKind) bool {
	_, ok := l.entries[ledgerKey{id, kind}]
	return ok
}

// replay returns patches restoring every in-flight change on top of freshly
// loaded records, oldest first.
func (l *ledger) replay() []state.Action {
	keys := make([]ledgerKey, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b ledgerKey) int {
		return cmp.Compare(l.entries[a].latest, l.entries[b].latest)
	})

	actions := make([]state.Action, 0, len(keys))
	for _, k := range keys {
		actions = append(actions, state.PatchRecord{ID: k.id, Patch: l.entries[k].applied})
	}
	return actions
}
