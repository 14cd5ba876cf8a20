package reqval

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lv2go/reqval/internal/atom"
	"github.com/lv2go/reqval/internal/dialog"
	"github.com/lv2go/reqval/internal/errors"
	"github.com/lv2go/reqval/internal/feature"
	"github.com/lv2go/reqval/internal/urid"
)

// PluginURI identifies the plugin and prefixes its parameter URIs.
const PluginURI = "http://gareus.org/oss/lv2/request_value"

// Parameter URIs declared by the plugin.
const (
	// BoolTestURI is the one writable boolean parameter ("booltest").
	BoolTestURI = PluginURI + "#booltest"

	// AckTestURI is mapped alongside booltest but has no runtime behavior.
	AckTestURI = PluginURI + "#acktest"
)

// Port indices expected by ConnectPort.
const (
	PortControl  uint32 = 0
	PortAudioIn  uint32 = 1
	PortAudioOut uint32 = 2
)

// requestDelayFactor gates the one-shot dialog request: it fires once the
// elapsed sample count exceeds this many seconds of audio.
const requestDelayFactor = 2

// dialogText is the fixed message shown by the host's value dialog.
const dialogText = "FOO BAR!"

// uriTable caches every URID the plugin compares against. Resolved once at
// instantiation and immutable afterwards.
type uriTable struct {
	atomBlank     urid.URID
	atomObject    urid.URID
	atomURID      urid.URID
	atomFloat     urid.URID
	atomBool      urid.URID
	patchSet      urid.URID
	patchProperty urid.URID
	patchValue    urid.URID
	boolTest      urid.URID
	ackTest       urid.URID
}

func mapURIs(m urid.Map) uriTable {
	return uriTable{
		atomBlank:     m.Map(atom.BlankURI),
		atomObject:    m.Map(atom.ObjectURI),
		atomURID:      m.Map(atom.URIDURI),
		atomFloat:     m.Map(atom.FloatURI),
		atomBool:      m.Map(atom.BoolURI),
		patchSet:      m.Map(atom.PatchSetURI),
		patchProperty: m.Map(atom.PatchPropertyURI),
		patchValue:    m.Map(atom.PatchValueURI),
		boolTest:      m.Map(BoolTestURI),
		ackTest:       m.Map(AckTestURI),
	}
}

// Plugin asks the host to request a boolean value from the user and parses
// the host's asynchronous reply.
//
// A Plugin is driven by a single processing thread: the host calls Run once
// per block, never concurrently. Roughly two seconds of audio after
// instantiation the plugin issues exactly one value-request dialog for its
// boolean parameter; the answer, if the user gives one, comes back as a
// patch:Set event on the control port of a later block. Audio is passed
// through unmodified.
type Plugin struct {
	// ports
	control  *atom.Sequence
	audioIn  []float32
	audioOut []float32

	log *slog.Logger

	// host capabilities
	requester dialog.ValueRequester

	// request payload, owned by the instance
	dialogMsg      dialog.Message
	dialogFeatures []*feature.Feature

	uris       uriTable
	sampleRate float64

	// state
	sampleCount uint64
	requestSent bool
}

// Instantiate creates a plugin instance at the given sample rate.
//
// The host must supply the URI mapping and value-request capabilities in the
// feature list; either one missing aborts instantiation. A logging capability
// is optional; without it the plugin logs to stderr. The bundle path is
// accepted for ABI parity and unused.
func Instantiate(rate float64, _ string, features []*feature.Feature) (*Plugin, error) {
	p := &Plugin{sampleRate: rate}

	var uriMap urid.Map

	for _, f := range features {
		if f == nil {
			continue
		}

		switch f.URI {
		case feature.URIDMapURI:
			if m, ok := f.Data.(urid.Map); ok {
				uriMap = m
			}
		case feature.LogURI:
			if l, ok := f.Data.(*slog.Logger); ok {
				p.log = l
			}
		case feature.RequestValueURI:
			if r, ok := f.Data.(dialog.ValueRequester); ok {
				p.requester = r
			}
		}
	}

	// Fallback sink when the host offers no log capability.
	if p.log == nil {
		p.log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	p.log = p.log.With("component", "reqval")

	if p.requester == nil {
		p.log.Error("Host does not support ui:requestValue")

		return nil, &errors.FeatureNotFoundError{URI: feature.RequestValueURI}
	}

	if uriMap == nil {
		p.log.Error("Host does not support urid:map")

		return nil, &errors.FeatureNotFoundError{URI: feature.URIDMapURI}
	}

	p.uris = mapURIs(uriMap)

	p.dialogMsg = dialog.Message{
		Free:           dialog.NopFree,
		RequiresReturn: true,
	}
	p.dialogFeatures = []*feature.Feature{
		{URI: feature.DialogMessageURI, Data: &p.dialogMsg},
	}

	return p, nil
}

// ConnectPort attaches a buffer to a port. Port 0 takes the control event
// sequence, ports 1 and 2 the audio input and output buffers. Unknown port
// indices are ignored.
func (p *Plugin) ConnectPort(port uint32, data any) error {
	switch port {
	case PortControl:
		seq, ok := data.(*atom.Sequence)
		if !ok {
			return fmt.Errorf("port %d: %w", port, errors.ErrInvalidPort)
		}

		p.control = seq

	case PortAudioIn:
		buf, ok := data.([]float32)
		if !ok {
			return fmt.Errorf("port %d: %w", port, errors.ErrInvalidPort)
		}

		p.audioIn = buf

	case PortAudioOut:
		buf, ok := data.([]float32)
		if !ok {
			return fmt.Errorf("port %d: %w", port, errors.ErrInvalidPort)
		}

		p.audioOut = buf
	}

	return nil
}

// Run processes one audio block of nsamples frames.
//
// Audio is forwarded input to output, control events are scanned for
// patch:Set messages, and once the elapsed sample count passes two seconds
// the one-shot value request is issued. Run never blocks and allocates
// nothing in the steady state.
func (p *Plugin) Run(nsamples uint32) {
	p.forwardAudio(nsamples)

	if p.control != nil {
		for i := range p.control.Events {
			ev := &p.control.Events[i]
			if ev.Body == nil || ev.Body.Type != p.uris.atomObject {
				continue
			}

			obj, ok := ev.Body.Object()
			if !ok {
				continue
			}

			if obj.ObjectType == p.uris.patchSet {
				p.parseSet(obj) //nolint:errcheck // malformed events are logged and dropped
			}
		}
	}

	if !p.requestSent && float64(p.sampleCount) > requestDelayFactor*p.sampleRate {
		p.requestSent = true
		p.dialogMsg.Text = dialogText
		p.dialogMsg.RequiresReturn = false

		// Fire and forget: the reply, if any, re-enters through the
		// control port. The request status is not actionable here.
		if err := p.requester.Request(p.uris.boolTest, p.uris.atomBool, p.dialogFeatures); err != nil {
			p.log.Warn("Value request failed", "error", err)
		}
	}

	p.sampleCount += uint64(nsamples)
}

// forwardAudio copies input to output. Hosts may connect the same buffer to
// both ports; the copy is skipped when the buffers alias.
func (p *Plugin) forwardAudio(nsamples uint32) {
	if p.audioIn == nil || p.audioOut == nil || nsamples == 0 {
		return
	}

	if &p.audioIn[0] == &p.audioOut[0] {
		return
	}

	copy(p.audioOut[:nsamples], p.audioIn[:nsamples])
}

// parseSet validates a patch:Set object and extracts the boolean payload.
//
// Each validation failure is logged, the message is discarded, and no state
// changes. On success the received value is logged; the plugin does not
// retain it; receipt is the whole point of this fixture.
func (p *Plugin) parseSet(obj *atom.Object) (bool, error) {
	property := obj.Get(p.uris.patchProperty)
	if property == nil {
		p.log.Error("Malformed set message has no property")

		return false, errors.ErrMissingProperty
	}

	if property.Type != p.uris.atomURID {
		p.log.Error("Malformed set message has non-URID property")

		return false, errors.ErrWrongPropertyType
	}

	val := obj.Get(p.uris.patchValue)
	if val == nil {
		p.log.Error("Malformed set message has no value")

		return false, errors.ErrMissingValue
	}

	propertyID, _ := property.URID()
	if propertyID != p.uris.boolTest {
		p.log.Error("Set message for unknown property", "urid", uint32(propertyID))

		return false, errors.ErrUnknownProperty
	}

	if val.Type != p.uris.atomBool {
		p.log.Error("Invalid property type, expected 'bool'")

		return false, errors.ErrWrongValueType
	}

	b, ok := val.Bool()
	if !ok {
		p.log.Error("Invalid property type, expected 'bool'")

		return false, errors.ErrWrongValueType
	}

	p.log.Info("Received boolean", "value", b)

	return b, nil
}

// ExtensionData exposes no extra extensions.
func (p *Plugin) ExtensionData(string) any {
	return nil
}

// Close releases instance resources. The host must not call Run afterwards.
func (p *Plugin) Close() {
	if p.dialogMsg.Free != nil {
		p.dialogMsg.Free(p.dialogMsg.Text)
	}

	p.dialogFeatures = nil
	p.control = nil
	p.audioIn = nil
	p.audioOut = nil
}
