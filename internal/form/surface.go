// Package form implements the edit-session engine: the bounded in-memory
// editing transaction for one record.  A session owns a working copy of the
// record, collects field values from a presentation surface, validates them
// and hands the result to a completion callback exactly once.
package form

import "time"

// Surface is the presentation collaborator contract.  It exposes typed
// getters and setters for each bindable attribute of a record plus a
// read-only toggle.  The engine never assumes a particular widget
// technology; HTTP handlers and tests provide map-backed implementations.
type Surface interface {
	Text(name string) string
	SetText(name, value string)
	Ref(name string) uint64
	SetRef(name string, value uint64)
	Time(name string) time.Time
	SetTime(name string, value time.Time)
	SetReadOnly(readOnly bool)
}

// Values is a map-backed Surface.  The zero value is not usable; construct
// with NewValues.
type Values struct {
	texts    map[string]string
	refs     map[string]uint64
	times    map[string]time.Time
	readOnly bool
}

// NewValues returns an empty, editable Values surface.
func NewValues() *Values {
	return &Values{
		texts: make(map[string]string),
		refs:  make(map[string]uint64),
		times: make(map[string]time.Time),
	}
}

func (v *Values) Text(name string) string          { return v.texts[name] }
func (v *Values) SetText(name, value string)       { v.texts[name] = value }
func (v *Values) Ref(name string) uint64           { return v.refs[name] }
func (v *Values) SetRef(name string, value uint64) { v.refs[name] = value }
func (v *Values) Time(name string) time.Time       { return v.times[name] }

func (v *Values) SetTime(name string, value time.Time) { v.times[name] = value }

// SetReadOnly records the read-only toggle; renderers consult ReadOnly.
func (v *Values) SetReadOnly(readOnly bool) { v.readOnly = readOnly }

// ReadOnly reports whether the surface has been disabled for viewing.
func (v *Values) ReadOnly() bool { return v.readOnly }
