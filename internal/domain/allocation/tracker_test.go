package allocation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAvailable(t *testing.T) {
	cases := []struct {
		name     string
		existing []int
		want     int
	}{
		{"empty", nil, 100},
		{"half", []int{50}, 50},
		{"full", []int{50, 50}, 0},
		{"oversubscribed_floors_at_zero", []int{75, 50}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Available(assignments(tc.existing)); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAdmit(t *testing.T) {
	// 50+30 leaves 20 available: 25 is rejected, 20 fits exactly and leaves
	// zero.
	existing := assignments([]int{50, 30})
	if err := Admit(existing, 25); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if err := Admit(existing, 20); err != nil {
		t.Fatalf("expected admit at exactly remaining capacity, got %v", err)
	}
	existing = append(existing, Assignment{ID: uuid.New(), Percentage: 20})
	if got := Available(existing); got != 0 {
		t.Fatalf("expected 0 available after accepting, got %d", got)
	}

	if err := Admit(nil, 0); !errors.Is(err, ErrInvalidAllocation) {
		t.Fatalf("expected ErrInvalidAllocation for zero, got %v", err)
	}
	if err := Admit(nil, 125); !errors.Is(err, ErrInvalidAllocation) {
		t.Fatalf("expected ErrInvalidAllocation above 100, got %v", err)
	}
	if err := Admit(assignments([]int{100}), 25); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded at full allocation, got %v", err)
	}
}

func TestAdmit_InvariantHolds(t *testing.T) {
	// After every accepted decision the sum stays at or under 100.
	existing := []Assignment{}
	for _, p := range []int{25, 25, 25, 25, 25} {
		if err := Admit(existing, p); err != nil {
			if !errors.Is(err, ErrCapacityExceeded) {
				t.Fatalf("unexpected err: %v", err)
			}
			continue
		}
		existing = append(existing, Assignment{ID: uuid.New(), Percentage: p})
	}
	total := 0
	for _, a := range existing {
		total += a.Percentage
	}
	if total > 100 {
		t.Fatalf("capacity invariant violated: %d", total)
	}
}

func TestAdmitEdit_ExcludesOwnPriorValue(t *testing.T) {
	id := uuid.New()
	existing := []Assignment{
		{ID: id, Percentage: 50},
		{ID: uuid.New(), Percentage: 50},
	}

	// No-op edit on a fully allocated user must pass.
	if err := AdmitEdit(existing, id, 50); err != nil {
		t.Fatalf("no-op edit rejected: %v", err)
	}
	// Growing past the other assignment's headroom must not.
	if err := AdmitEdit(existing, id, 75); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestValidSlot(t *testing.T) {
	for _, p := range []int{25, 50, 75, 100} {
		if !ValidSlot(p) {
			t.Fatalf("expected %d to be a valid slot", p)
		}
	}
	for _, p := range []int{0, 10, 20, 30, 101} {
		if ValidSlot(p) {
			t.Fatalf("expected %d to be rejected", p)
		}
	}
}

func assignments(pcts []int) []Assignment {
	out := make([]Assignment, 0, len(pcts))
	for _, p := range pcts {
		out = append(out, Assignment{ID: uuid.New(), Percentage: p})
	}
	return out
}
