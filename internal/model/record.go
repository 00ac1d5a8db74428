// Package model defines the persisted entity types of the scheduler and the
// generic validation engine shared by all of them.  Every editable entity
// embeds Record and declares an explicit field descriptor list; the
// descriptors drive both the required-field validation and the copying of
// values between an edit surface and the entity.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies an entity attribute for the descriptor-driven loops.
// Text fields map to free-form strings, Ref fields to foreign-key ids
// (zero meaning "not selected"), and Time fields to timestamps.
type Kind int

const (
	KindText Kind = iota // short text attribute
	KindRef              // foreign-key reference (0 = unset)
	KindTime             // timestamp attribute
)

// Field describes one attribute of an entity: its declared name, its kind
// and a pointer to the backing value.  Exactly one of Text, Ref and Time is
// non-nil, matching Kind.  Fields are returned in declaration order; the
// validator reports the first failing field in that order.
type Field struct {
	Name string
	Kind Kind
	Text *string
	Ref  *uint64
	Time *time.Time
}

// TextField builds a descriptor for a short text attribute.
func TextField(name string, v *string) Field {
	return Field{Name: name, Kind: KindText, Text: v}
}

// RefField builds a descriptor for a foreign-key attribute.
func RefField(name string, v *uint64) Field {
	return Field{Name: name, Kind: KindRef, Ref: v}
}

// TimeField builds a descriptor for a timestamp attribute.
func TimeField(name string, v *time.Time) Field {
	return Field{Name: name, Kind: KindTime, Time: v}
}

// Record is the base of every persisted entity.  ID is the primary key; an
// ID of zero means the record has never been successfully inserted.  The ID
// is reset to zero only after a confirmed delete.
type Record struct {
	ID uint64
}

// RecordID returns the primary key, zero when the record is unsaved.
func (r *Record) RecordID() uint64 { return r.ID }

// SetRecordID assigns the primary key, typically after an insert.
func (r *Record) SetRecordID(id uint64) { r.ID = id }

// Entity is implemented by every editable record type.
type Entity interface {
	RecordID() uint64
	SetRecordID(uint64)
	// Fields returns the attribute descriptors in declaration order.
	Fields() []Field
}

// Model extends Entity with the copy semantics the table engine needs: a
// defensive copy for edit sessions and a full-field merge back into the
// canonical row after a successful update.
type Model[T Entity] interface {
	Entity
	Copy() T
	ApplyChanges(T)
}

// BusinessRuled is implemented by entities that carry rules beyond the
// generic required-field check.  The hook runs only after the generic tier
// passes and receives the configured business timezone.
type BusinessRuled interface {
	ValidateBusiness(tz *time.Location) error
}

// EmptyFieldError reports the first declared attribute that is blank (text)
// or unset (reference).
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("field %q must not be empty", e.Field)
}

// Validator evaluates the two validation tiers for any entity.  BusinessTZ
// is the fixed reference timezone used by entity-specific rules; it is
// independent of the timezone rows are stored or displayed in.
type Validator struct {
	BusinessTZ *time.Location
}

// NewValidator returns a Validator bound to the given business timezone.
func NewValidator(tz *time.Location) *Validator {
	return &Validator{BusinessTZ: tz}
}

// Validate runs the generic required-field tier and then the entity's
// business-rule hook, failing fast on the first error.  Text fields fail
// when trimmed to zero length, reference fields when zero; timestamp fields
// are exempt because a constructed record always carries a value.
func (v *Validator) Validate(e Entity) error {
	for _, f := range e.Fields() {
		switch f.Kind {
		case KindText:
			if strings.TrimSpace(*f.Text) == "" {
				return &EmptyFieldError{Field: f.Name}
			}
		case KindRef:
			if *f.Ref == 0 {
				return &EmptyFieldError{Field: f.Name}
			}
		case KindTime:
			// structurally always present
		}
	}
	if b, ok := e.(BusinessRuled); ok {
		return b.ValidateBusiness(v.BusinessTZ)
	}
	return nil
}
