package renderer

import (
	"errors"
	"testing"
)

func TestMatchHighlightPlaceAndClear(t *testing.T) {
	var added []int
	var cleared []int
	next := 100

	backend := NewMatchHighlight(
		func(line, col, length int, style Style) (int, error) {
			next++
			added = append(added, next)
			return next, nil
		},
		func(ids []int) error {
			cleared = append(cleared, ids...)
			return nil
		},
	)

	if err := backend.PlaceMarker(1, 2, "AB", DefaultMarkerStyle()); err != nil {
		t.Fatalf("PlaceMarker() = %v, want nil", err)
	}
	if err := backend.PlaceMarker(3, 4, "C", DefaultMarkerStyle()); err != nil {
		t.Fatalf("PlaceMarker() = %v, want nil", err)
	}

	if err := backend.ClearAll(); err != nil {
		t.Fatalf("ClearAll() = %v, want nil", err)
	}
	if len(cleared) != 2 {
		t.Errorf("cleared %d match IDs, want 2", len(cleared))
	}

	// Idempotent: a second clear has nothing to remove and must not
	// call the host again.
	cleared = nil
	if err := backend.ClearAll(); err != nil {
		t.Fatalf("second ClearAll() = %v, want nil", err)
	}
	if len(cleared) != 0 {
		t.Errorf("second ClearAll cleared %d IDs, want 0", len(cleared))
	}
}

func TestMatchHighlightAddFailure(t *testing.T) {
	backend := NewMatchHighlight(
		func(line, col, length int, style Style) (int, error) {
			return 0, errors.New("host rejected match")
		},
		func(ids []int) error { return nil },
	)

	if err := backend.PlaceMarker(0, 0, "A", DefaultMarkerStyle()); err == nil {
		t.Error("PlaceMarker() = nil, want error from host")
	}
}

func TestTicketCancel(t *testing.T) {
	ticket := NewTicket()
	if ticket.Cancelled() {
		t.Error("new ticket must start live")
	}
	ticket.Cancel()
	ticket.Cancel()
	if !ticket.Cancelled() {
		t.Error("Cancelled() = false after Cancel")
	}
	if ticket.ID() == NewTicket().ID() {
		t.Error("tickets share an ID")
	}
}
