// Package dialog defines the value-request capability and the out-of-band
// message payload a plugin attaches to a request.
package dialog

import (
	"github.com/lv2go/reqval/internal/feature"
	"github.com/lv2go/reqval/internal/urid"
)

// Message is the payload passed alongside a value request.
//
// The host owns the dialog lifecycle; the plugin only supplies the text and
// a release callback invoked when the host is done with it.
type Message struct {
	// Free releases Text once the host no longer needs it. Plugins with
	// statically owned text pass a no-op.
	Free func(text string)

	Text           string
	RequiresReturn bool
}

// NopFree is a release callback for text the plugin keeps ownership of.
func NopFree(string) {}

// ValueRequester is the host capability that shows a value-request dialog.
//
// Request must not block: it schedules UI work and returns. The user's
// answer, if any, arrives later as a patch:Set event on the plugin's control
// port, not through any callback. There is no way to cancel a request.
type ValueRequester interface {
	Request(property, valueType urid.URID, features []*feature.Feature) error
}

// RequesterFunc adapts a function to the ValueRequester interface.
type RequesterFunc func(property, valueType urid.URID, features []*feature.Feature) error

// Request implements ValueRequester.
func (f RequesterFunc) Request(property, valueType urid.URID, features []*feature.Feature) error {
	return f(property, valueType, features)
}
