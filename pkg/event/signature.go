package event

import (
	"fmt"
	"sort"
	"strings"
)

// SignatureEmpty is the constant signature of a nil or empty event set.
const SignatureEmpty = "empty"

// Signature computes an order-independent change-detection hash for a set of
// events. The same multiset of events yields the same signature regardless of
// input order; any change to an event's id, start, end, title, or color, or
// to the event count, is expected to change it. Collisions are acceptable:
// this is a cheap heuristic for skipping re-renders, not a digest.
func Signature(events []Event) string {
	if len(events) == 0 {
		return SignatureEmpty
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	var b strings.Builder
	for _, e := range sorted {
		b.WriteString(e.ID)
		b.WriteByte('|')
		b.WriteString(e.Start.String())
		b.WriteByte('|')
		b.WriteString(e.End.String())
		b.WriteByte('|')
		b.WriteString(e.Title)
		b.WriteByte('|')
		b.WriteString(e.BackgroundColor)
		b.WriteByte(';')
	}

	var hash uint32
	for _, c := range []byte(b.String()) {
		hash = hash*31 + uint32(c)
	}

	return fmt.Sprintf("sig:%d:%d", len(events), hash)
}
