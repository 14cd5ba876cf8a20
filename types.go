package reqval

import (
	"github.com/lv2go/reqval/internal/atom"
	"github.com/lv2go/reqval/internal/dialog"
	"github.com/lv2go/reqval/internal/feature"
	"github.com/lv2go/reqval/internal/urid"
)

// Re-export types from internal packages

// ===== URI mapping =====

// URID is a process-local integer token substituted for a URI string.
type URID = urid.URID

// URIDInvalid is the zero URID, returned for unmapped URIs.
const URIDInvalid = urid.Invalid

// URIDMap is the URI mapping capability a host provides at instantiation.
type URIDMap = urid.Map

// URIDUnmap is the optional reverse mapping capability.
type URIDUnmap = urid.Unmap

// URIDRegistry is an in-memory URIDMap implementation for host-side use.
type URIDRegistry = urid.Registry

// NewURIDRegistry creates an empty URID registry.
var NewURIDRegistry = urid.NewRegistry

// ===== Atoms =====

// Atom is a typed control-event value.
type Atom = atom.Atom

// Object is a structured atom: an object-type tag plus ordered properties.
type Object = atom.Object

// Property is a keyed value inside an Object.
type Property = atom.Property

// Event is a timestamped atom within a sequence.
type Event = atom.Event

// Sequence is the control-event stream delivered to the plugin each block.
type Sequence = atom.Sequence

// Forge builds atoms tagged with URIDs from a specific map.
type Forge = atom.Forge

// NewForge resolves the atom and patch vocabulary against a map.
var NewForge = atom.NewForge

// ===== Features =====

// Feature is a single URI-tagged host capability.
type Feature = feature.Feature

// FindFeature returns the data of the first feature with the given URI.
var FindFeature = feature.Find

// Well-known feature URIs.
const (
	// FeatureURIDMap identifies the URI mapping capability.
	FeatureURIDMap = feature.URIDMapURI

	// FeatureLog identifies the host logging capability.
	FeatureLog = feature.LogURI

	// FeatureRequestValue identifies the value-request dialog capability.
	FeatureRequestValue = feature.RequestValueURI

	// FeatureDialogMessage identifies the dialog message payload.
	FeatureDialogMessage = feature.DialogMessageURI
)

// ===== Dialog =====

// DialogMessage is the payload passed alongside a value request.
type DialogMessage = dialog.Message

// ValueRequester is the host capability that shows a value-request dialog.
type ValueRequester = dialog.ValueRequester

// RequesterFunc adapts a function to the ValueRequester interface.
type RequesterFunc = dialog.RequesterFunc
