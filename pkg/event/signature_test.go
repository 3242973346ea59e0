package event

import (
	"math/rand"
	"testing"
	"time"
)

func fixtureEvents() []Event {
	start := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	return []Event{
		{
			ID:              "job-1",
			Title:           "Dump trailer - Acme Paving",
			Start:           Timestamp{start},
			End:             Timestamp{start.Add(4 * time.Hour)},
			BackgroundColor: "#2e86c1",
			Details:         JobDetails{BusinessName: "Acme Paving", Status: "scheduled"},
		},
		{
			ID:              "job-2",
			Title:           "Flatbed - Hilltop Farms",
			Start:           Timestamp{start.Add(24 * time.Hour)},
			AllDay:          true,
			End:             Timestamp{start.Add(48 * time.Hour)},
			BackgroundColor: "#27ae60",
		},
		{
			ID:    "rem-7",
			Title: "Call back: Smith",
			Start: Timestamp{start.Add(30 * time.Hour)},
			Details: CallReminderDetails{
				JobID: "job-2",
				Phone: "555-0100",
			},
		},
	}
}

func TestSignatureEmpty(t *testing.T) {
	if got := Signature(nil); got != SignatureEmpty {
		t.Fatalf("expected %q for nil input, got %q", SignatureEmpty, got)
	}
	if got := Signature([]Event{}); got != SignatureEmpty {
		t.Fatalf("expected %q for empty input, got %q", SignatureEmpty, got)
	}
}

func TestSignatureStableUnderReordering(t *testing.T) {
	events := fixtureEvents()
	want := Signature(events)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Event, len(events))
		copy(shuffled, events)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Signature(shuffled); got != want {
			t.Fatalf("signature changed under permutation: %q vs %q", got, want)
		}
	}
}

func TestSignatureDoesNotMutateInput(t *testing.T) {
	events := fixtureEvents()
	first := events[0].ID
	_ = Signature(events)
	if events[0].ID != first {
		t.Fatalf("input slice was reordered")
	}
}

func TestSignatureSensitivity(t *testing.T) {
	base := Signature(fixtureEvents())

	mutations := map[string]func([]Event) []Event{
		"title": func(e []Event) []Event {
			e[1].Title = "Flatbed - Hilltop Farms (revised)"
			return e
		},
		"start": func(e []Event) []Event {
			e[0].Start = Timestamp{e[0].Start.Add(time.Hour)}
			return e
		},
		"end": func(e []Event) []Event {
			e[0].End = Timestamp{e[0].End.Add(30 * time.Minute)}
			return e
		},
		"color": func(e []Event) []Event {
			e[2].BackgroundColor = "#c0392b"
			return e
		},
		"count": func(e []Event) []Event {
			return e[:2]
		},
	}

	for name, mutate := range mutations {
		events := mutate(fixtureEvents())
		if got := Signature(events); got == base {
			t.Fatalf("%s mutation did not change the signature", name)
		}
	}
}

func TestSignatureIgnoresDetails(t *testing.T) {
	events := fixtureEvents()
	base := Signature(events)
	events[0].Details = JobDetails{BusinessName: "Acme Paving", Status: "completed"}
	if got := Signature(events); got != base {
		t.Fatalf("details change altered the signature: %q vs %q", got, base)
	}
}
