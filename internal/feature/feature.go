// Package feature implements host feature negotiation.
//
// Hosts pass capabilities to plugins as a flat list of URI-tagged features at
// instantiation. Plugins scan the list once and cache what they need; unknown
// features are ignored.
package feature

// Well-known feature URIs.
const (
	// URIDMapURI identifies the URI mapping capability (urid.Map).
	URIDMapURI = "http://lv2plug.in/ns/ext/urid#map"

	// LogURI identifies the host logging capability (*slog.Logger).
	LogURI = "http://lv2plug.in/ns/ext/log#log"

	// RequestValueURI identifies the value-request dialog capability
	// (dialog.ValueRequester).
	RequestValueURI = "http://lv2plug.in/ns/extensions/ui#requestValue"

	// DialogMessageURI identifies the out-of-band dialog message payload
	// (*dialog.Message) a plugin attaches to a value request.
	DialogMessageURI = "http://ardour.org/lv2/dialog_message"
)

// Feature is a single URI-tagged host capability.
type Feature struct {
	URI  string
	Data any
}

// Find returns the data of the first feature with the given URI.
func Find(features []*Feature, uri string) (any, bool) {
	for _, f := range features {
		if f == nil {
			continue
		}

		if f.URI == uri {
			return f.Data, true
		}
	}

	return nil, false
}
