package atom

import "github.com/lv2go/reqval/internal/urid"

// Vocabulary URIs for the atom and patch types this module understands.
const (
	BlankURI  = "http://lv2plug.in/ns/ext/atom#Blank"
	ObjectURI = "http://lv2plug.in/ns/ext/atom#Object"
	URIDURI   = "http://lv2plug.in/ns/ext/atom#URID"
	FloatURI  = "http://lv2plug.in/ns/ext/atom#Float"
	BoolURI   = "http://lv2plug.in/ns/ext/atom#Bool"

	PatchSetURI      = "http://lv2plug.in/ns/ext/patch#Set"
	PatchPropertyURI = "http://lv2plug.in/ns/ext/patch#property"
	PatchValueURI    = "http://lv2plug.in/ns/ext/patch#value"
)

// Atom is a typed value. The Type tag is a URID resolved against the host's
// mapping service, so an Atom is only meaningful relative to the map that
// produced it. Atoms are immutable once built.
type Atom struct {
	Type  urid.URID
	Value any
}

// Bool returns the boolean payload. The second return is false when the
// payload is not a bool, regardless of the Type tag: type-tag checks are the
// caller's job, payload shape checks are ours.
func (a *Atom) Bool() (bool, bool) {
	if a == nil {
		return false, false
	}

	b, ok := a.Value.(bool)

	return b, ok
}

// Float returns the float payload.
func (a *Atom) Float() (float32, bool) {
	if a == nil {
		return 0, false
	}

	f, ok := a.Value.(float32)

	return f, ok
}

// URID returns the URID payload.
func (a *Atom) URID() (urid.URID, bool) {
	if a == nil {
		return urid.Invalid, false
	}

	id, ok := a.Value.(urid.URID)

	return id, ok
}

// Object returns the object payload.
func (a *Atom) Object() (*Object, bool) {
	if a == nil {
		return nil, false
	}

	obj, ok := a.Value.(*Object)

	return obj, ok
}

// Property is a keyed value inside an Object.
type Property struct {
	Key   urid.URID
	Value *Atom
}

// Object is a structured atom: an object-type tag plus an ordered property
// list. Duplicate keys are permitted; Get returns the first match.
type Object struct {
	ObjectType urid.URID
	Properties []Property
}

// Get returns the first property value for key, or nil if absent.
func (o *Object) Get(key urid.URID) *Atom {
	if o == nil {
		return nil
	}

	for _, p := range o.Properties {
		if p.Key == key {
			return p.Value
		}
	}

	return nil
}

// Event is a timestamped atom within a sequence. Frames is the offset from
// the start of the block the sequence was delivered in.
type Event struct {
	Frames int64
	Body   *Atom
}

// Sequence is the control-event stream delivered to a plugin each block.
// Events are ordered by delivery, not re-sorted.
type Sequence struct {
	Events []Event
}

// Append adds an event to the end of the sequence.
func (s *Sequence) Append(frames int64, body *Atom) {
	s.Events = append(s.Events, Event{Frames: frames, Body: body})
}

// Clear drops all events, retaining capacity for reuse across blocks.
func (s *Sequence) Clear() {
	s.Events = s.Events[:0]
}
