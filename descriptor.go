package reqval

import "github.com/lv2go/reqval/internal/feature"

// Descriptor describes a plugin this module exports: its identity URI and
// instantiation entry point.
type Descriptor struct {
	URI         string
	Instantiate func(rate float64, bundlePath string, features []*feature.Feature) (*Plugin, error)
}

var descriptor = Descriptor{
	URI:         PluginURI,
	Instantiate: Instantiate,
}

// Lookup returns the descriptor at index, the way a host enumerates a
// bundle's plugins. This module exports exactly one descriptor at index 0;
// every other index returns nil.
func Lookup(index uint32) *Descriptor {
	if index == 0 {
		return &descriptor
	}

	return nil
}
