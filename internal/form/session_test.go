package form

import (
	"errors"
	"testing"
	"time"

	"github.com/avelik/schedesk/internal/model"
)

func testValidator() *model.Validator {
	return model.NewValidator(time.UTC)
}

func storedCustomer() *model.Customer {
	return &model.Customer{
		Record:     model.Record{ID: 4},
		Name:       "Acme Corp",
		Address:    "1 Main St",
		PostalCode: "12345",
		Phone:      "555-0100",
		DivisionID: 3,
	}
}

func TestCommitCreateFlow(t *testing.T) {
	var got *model.Customer
	blank := &model.Customer{}
	surface := NewValues()
	s := Open(Create, blank, surface, testValidator(), func(c *model.Customer) error {
		got = c
		return nil
	})

	surface.SetText("name", "  Acme Corp ")
	surface.SetText("address", "1 Main St")
	surface.SetText("postalCode", "12345")
	surface.SetText("phone", "555-0100")
	surface.SetRef("divisionId", 3)

	if err := s.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if s.State() != Closed {
		t.Fatalf("expected Closed, got %v", s.State())
	}
	if got == nil || got.Name != "Acme Corp" {
		t.Fatalf("callback record wrong: %+v", got)
	}
}

func TestCommitValidationFailureStaysOpen(t *testing.T) {
	calls := 0
	surface := NewValues()
	s := Open(Create, &model.Customer{}, surface, testValidator(), func(c *model.Customer) error {
		calls++
		return nil
	})

	if err := s.Commit(); err == nil {
		t.Fatal("expected validation error for blank record")
	}
	if s.State() != Editing {
		t.Fatalf("expected Editing after rejection, got %v", s.State())
	}
	if calls != 0 {
		t.Fatalf("callback must not fire on validation failure, fired %d times", calls)
	}

	// fix the fields and retry in place
	surface.SetText("name", "Acme Corp")
	surface.SetText("address", "1 Main St")
	surface.SetText("postalCode", "12345")
	surface.SetText("phone", "555-0100")
	surface.SetRef("divisionId", 3)
	if err := s.Commit(); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one completion, got %d", calls)
	}
}

func TestCallbackRejectionKeepsSessionOpen(t *testing.T) {
	rejected := errors.New("overlapping appointment")
	attempts := 0
	surface := NewValues()
	s := Open(Update, storedCustomer().Copy(), surface, testValidator(), func(c *model.Customer) error {
		attempts++
		if attempts == 1 {
			return rejected
		}
		return nil
	})

	if err := s.Commit(); !errors.Is(err, rejected) {
		t.Fatalf("expected callback rejection, got %v", err)
	}
	if s.State() != Editing {
		t.Fatalf("expected session to stay open, got %v", s.State())
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("second attempt should close: %v", err)
	}
	if attempts != 2 || s.State() != Closed {
		t.Fatalf("attempts=%d state=%v", attempts, s.State())
	}
}

func TestCancelLeavesOriginalUnchanged(t *testing.T) {
	original := storedCustomer()
	snapshot := *original

	surface := NewValues()
	s := Open(Update, original.Copy(), surface, testValidator(), func(c *model.Customer) error {
		return nil
	})
	surface.SetText("name", "Mutated")
	surface.SetRef("divisionId", 99)
	s.Cancel()

	if *original != snapshot {
		t.Fatalf("cancel bled into the original row: %+v", original)
	}
	if s.State() != Closed {
		t.Fatalf("expected Closed, got %v", s.State())
	}
}

func TestCancelInvokesCallbackWithNil(t *testing.T) {
	var got *model.Customer
	called := false
	s := Open(Update, storedCustomer().Copy(), NewValues(), testValidator(), func(c *model.Customer) error {
		called = true
		got = c
		return nil
	})
	s.Cancel()
	if !called || got != nil {
		t.Fatalf("expected nil-record completion, called=%v got=%+v", called, got)
	}
}

func TestCompletionFiresAtMostOnce(t *testing.T) {
	calls := 0
	surface := NewValues()
	s := Open(Update, storedCustomer().Copy(), surface, testValidator(), func(c *model.Customer) error {
		calls++
		return nil
	})
	if err := s.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	// a racing close event cancels after the commit already completed
	s.Cancel()
	s.Cancel()
	if calls != 1 {
		t.Fatalf("expected exactly one completion, got %d", calls)
	}
}

func TestReadModeDisablesSurfaceAndCommit(t *testing.T) {
	surface := NewValues()
	rec := storedCustomer()
	s := Open(Read, rec.Copy(), surface, testValidator(), func(c *model.Customer) error {
		t.Fatal("completion must not fire from a commit in read mode")
		return nil
	})
	if !surface.ReadOnly() {
		t.Fatal("expected surface to be disabled in read mode")
	}
	if surface.Text("name") != rec.Name || surface.Ref("divisionId") != rec.DivisionID {
		t.Fatal("expected surface to be pre-populated from the record")
	}
	if err := s.Commit(); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestCommitAfterCloseFails(t *testing.T) {
	s := Open(Update, storedCustomer().Copy(), NewValues(), testValidator(), nil)
	s.Cancel()
	if err := s.Commit(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
