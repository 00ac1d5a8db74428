package form

import (
	"errors"
	"strings"

	"github.com/avelik/schedesk/internal/model"
)

// Mode selects how a session treats its record.
type Mode int

const (
	Create Mode = iota // blank working copy, insert on commit
	Read               // disabled surface, no commit path
	Update             // pre-populated working copy, update on commit
)

// State is the session lifecycle position.
type State int

const (
	Opened  State = iota // constructed, no commit attempted yet
	Editing              // at least one commit attempted and rejected
	Closed               // terminal; the working copy has been handed off or discarded
)

// ErrReadOnly is returned when Commit is called on a Read-mode session.
var ErrReadOnly = errors.New("form: session is read-only")

// ErrClosed is returned when Commit is called after the session closed.
var ErrClosed = errors.New("form: session is closed")

// CompleteFunc consumes the validated working record when a session
// finishes.  A nil error means the record was accepted and the session may
// close; a non-nil error keeps the session open so the operator can retry.
// On cancel the callback receives the zero value (nil for pointer records)
// and its return value is ignored.
type CompleteFunc[T model.Model[T]] func(T) error

// Session is one in-flight edit of one record.  The working copy is never
// the same object as the canonical table row, so cancelling leaves the row
// untouched.  The completion callback fires at most once: it is nulled
// after its first successful invocation, making a late cancel after a
// successful commit a no-op.
type Session[T model.Model[T]] struct {
	mode      Mode
	state     State
	record    T
	surface   Surface
	validator *model.Validator
	complete  CompleteFunc[T]
}

// Open starts a session over the given working record.  For Read and Update
// modes the surface is pre-populated from the record; Read mode also
// disables the surface.  Create mode leaves the surface in its default
// state.
func Open[T model.Model[T]](mode Mode, record T, surface Surface, v *model.Validator, complete CompleteFunc[T]) *Session[T] {
	s := &Session[T]{
		mode:      mode,
		state:     Opened,
		record:    record,
		surface:   surface,
		validator: v,
		complete:  complete,
	}
	if mode != Create {
		for _, f := range record.Fields() {
			switch f.Kind {
			case model.KindText:
				surface.SetText(f.Name, *f.Text)
			case model.KindRef:
				surface.SetRef(f.Name, *f.Ref)
			case model.KindTime:
				surface.SetTime(f.Name, *f.Time)
			}
		}
	}
	surface.SetReadOnly(mode == Read)
	return s
}

// Mode returns the mode the session was opened in.
func (s *Session[T]) Mode() Mode { return s.mode }

// State returns the current lifecycle position.
func (s *Session[T]) State() State { return s.state }

// Record returns the working copy.  Callers must not hold it past Close.
func (s *Session[T]) Record() T { return s.record }

// Commit copies the surface values into the working record, validates it
// and invokes the completion callback.  On a validation error or a callback
// rejection the session stays open with the surface still editable and the
// record partially updated in memory only; nothing has been persisted.
func (s *Session[T]) Commit() error {
	if s.state == Closed {
		return ErrClosed
	}
	if s.mode == Read {
		return ErrReadOnly
	}
	s.state = Editing
	for _, f := range s.record.Fields() {
		switch f.Kind {
		case model.KindText:
			*f.Text = strings.TrimSpace(s.surface.Text(f.Name))
		case model.KindRef:
			*f.Ref = s.surface.Ref(f.Name)
		case model.KindTime:
			*f.Time = s.surface.Time(f.Name)
		}
	}
	if err := s.validator.Validate(s.record); err != nil {
		return err
	}
	if s.complete != nil {
		if err := s.complete(s.record); err != nil {
			return err
		}
		s.complete = nil
	}
	s.state = Closed
	return nil
}

// Cancel closes the session without handing over the record.  The
// completion callback, if it has not already fired, is invoked with a zero
// record so the owner can release the single-flight guard; its return value
// is ignored and the session closes unconditionally.
func (s *Session[T]) Cancel() {
	if s.state == Closed {
		return
	}
	if s.complete != nil {
		var zero T
		_ = s.complete(zero)
		s.complete = nil
	}
	s.state = Closed
}
