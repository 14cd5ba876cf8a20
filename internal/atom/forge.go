package atom

import "github.com/lv2go/reqval/internal/urid"

// Forge builds atoms tagged with URIDs from a specific map.
//
// The vocabulary is resolved once at construction; building atoms afterwards
// never touches the map again and never allocates beyond the atom itself.
type Forge struct {
	Blank  urid.URID
	Object urid.URID
	URID   urid.URID
	Float  urid.URID
	Bool   urid.URID

	PatchSet      urid.URID
	PatchProperty urid.URID
	PatchValue    urid.URID
}

// NewForge resolves the atom and patch vocabulary against m.
func NewForge(m urid.Map) *Forge {
	return &Forge{
		Blank:         m.Map(BlankURI),
		Object:        m.Map(ObjectURI),
		URID:          m.Map(URIDURI),
		Float:         m.Map(FloatURI),
		Bool:          m.Map(BoolURI),
		PatchSet:      m.Map(PatchSetURI),
		PatchProperty: m.Map(PatchPropertyURI),
		PatchValue:    m.Map(PatchValueURI),
	}
}

// NewBool builds a boolean atom.
func (f *Forge) NewBool(v bool) *Atom {
	return &Atom{Type: f.Bool, Value: v}
}

// NewFloat builds a float atom.
func (f *Forge) NewFloat(v float32) *Atom {
	return &Atom{Type: f.Float, Value: v}
}

// NewURID builds a URID atom.
func (f *Forge) NewURID(id urid.URID) *Atom {
	return &Atom{Type: f.URID, Value: id}
}

// NewObject builds an object atom with the given object type and properties.
func (f *Forge) NewObject(otype urid.URID, props ...Property) *Atom {
	return &Atom{
		Type:  f.Object,
		Value: &Object{ObjectType: otype, Properties: props},
	}
}

// NewSet builds a patch:Set object assigning value to property.
func (f *Forge) NewSet(property urid.URID, value *Atom) *Atom {
	return f.NewObject(f.PatchSet,
		Property{Key: f.PatchProperty, Value: f.NewURID(property)},
		Property{Key: f.PatchValue, Value: value},
	)
}
