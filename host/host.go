package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lv2go/reqval"
	"github.com/lv2go/reqval/host/recorder"
	"github.com/lv2go/reqval/internal/errors"
)

// ErrClosed is returned by RunBlocks after Close.
var ErrClosed = errors.ErrHostClosed

// Request is one captured value-request dialog.
//
// The ID is assigned by the host for logging and recording only. The plugin
// does not correlate replies against it; replies are matched by property
// token and value type alone, which is exactly what this fixture exercises.
type Request struct {
	ID             string
	Property       reqval.URID
	ValueType      reqval.URID
	Text           string
	RequiresReturn bool
}

// Responder decides how the scripted "user" answers a dialog request.
// Returning respond == false dismisses the dialog without a reply.
type Responder func(req Request) (value bool, respond bool)

// scheduledReply is a patch:Set atom waiting to be injected into the
// control sequence of a future block.
type scheduledReply struct {
	body *reqval.Atom
	due  uint64
}

// Host drives the plugin in-process.
//
// It owns the URID registry, supplies the plugin's capabilities, and runs the
// processing loop on a single goroutine, preserving the audio-thread
// discipline the plugin expects. Dialog requests are answered by a scripted
// Responder between blocks, and the reply re-enters through the control
// sequence of a later block, the same path a real host would use.
type Host struct {
	log       *slog.Logger
	registry  *reqval.URIDRegistry
	forge     *reqval.Forge
	plugin    *reqval.Plugin
	rec       *recorder.Recorder
	responder Responder

	sessionID  string
	sampleRate float64
	replyDelay uint64

	seq      reqval.Sequence
	audioIn  []float32
	audioOut []float32

	block   uint64
	replies []scheduledReply

	mu       sync.Mutex
	pending  []Request
	requests []Request
	injected int
	closed   bool
}

// New instantiates the plugin and prepares a host around it.
func New(sampleRate float64, opts ...Option) (*Host, error) {
	options := applyOptions(opts)

	h := &Host{
		registry:   reqval.NewURIDRegistry(),
		rec:        options.recorder,
		responder:  options.responder,
		sessionID:  uuid.NewString(),
		sampleRate: sampleRate,
		replyDelay: options.replyDelay,
	}

	base := options.logger
	if base == nil {
		base = reqval.NopLogger()
	}

	h.log = base.With("component", "host", "session_id", h.sessionID)
	h.forge = reqval.NewForge(h.registry)

	desc := reqval.Lookup(0)

	p, err := desc.Instantiate(sampleRate, "", []*reqval.Feature{
		{URI: reqval.FeatureURIDMap, Data: h.registry},
		{URI: reqval.FeatureRequestValue, Data: h},
		{URI: reqval.FeatureLog, Data: base},
	})
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", desc.URI, err)
	}

	h.plugin = p

	if err := p.ConnectPort(reqval.PortControl, &h.seq); err != nil {
		return nil, err
	}

	if h.rec != nil {
		if err := h.rec.BeginSession(h.sessionID, desc.URI); err != nil {
			return nil, fmt.Errorf("begin session: %w", err)
		}
	}

	h.log.Info("Plugin instantiated", "uri", desc.URI, "sample_rate", sampleRate)

	return h, nil
}

// Request implements the value-request capability handed to the plugin.
// It captures the request and returns immediately; the scripted responder
// answers between blocks.
func (h *Host) Request(property, valueType reqval.URID, features []*reqval.Feature) error {
	req := Request{
		ID:        ulid.Make().String(),
		Property:  property,
		ValueType: valueType,
	}

	if data, ok := reqval.FindFeature(features, reqval.FeatureDialogMessage); ok {
		if msg, ok := data.(*reqval.DialogMessage); ok {
			req.Text = msg.Text
			req.RequiresReturn = msg.RequiresReturn
		}
	}

	h.mu.Lock()
	h.pending = append(h.pending, req)
	h.requests = append(h.requests, req)
	h.mu.Unlock()

	h.log.Info("Dialog request captured", "request_id", req.ID, "text", req.Text)

	return nil
}

// RunBlocks processes the given number of audio blocks.
//
// The processing loop runs on one goroutine; recorder writes happen on a
// second so the audio path never waits on sqlite. Returns early if ctx is
// cancelled.
func (h *Host) RunBlocks(ctx context.Context, blocks int, blockSize uint32) error {
	h.mu.Lock()

	if h.closed {
		h.mu.Unlock()

		return errors.ErrHostClosed
	}

	h.mu.Unlock()

	if err := h.connectAudio(blockSize); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	events := make(chan recorder.Event, 64)

	eg.Go(func() error {
		for ev := range events {
			if h.rec == nil {
				continue
			}

			if err := h.rec.Record(ev); err != nil {
				h.log.Warn("Recorder write failed", "error", err)
			}
		}

		return nil
	})

	eg.Go(func() error {
		defer close(events)

		for range blocks {
			if err := ctx.Err(); err != nil {
				return err
			}

			h.injectDueReplies()
			h.plugin.Run(blockSize)
			h.seq.Clear()
			h.serviceRequests(events)
			h.block++
		}

		return nil
	})

	return eg.Wait()
}

// connectAudio sizes and wires the audio buffers for the coming blocks.
func (h *Host) connectAudio(blockSize uint32) error {
	if uint32(len(h.audioIn)) != blockSize {
		h.audioIn = make([]float32, blockSize)
		h.audioOut = make([]float32, blockSize)
	}

	if err := h.plugin.ConnectPort(reqval.PortAudioIn, h.audioIn); err != nil {
		return err
	}

	return h.plugin.ConnectPort(reqval.PortAudioOut, h.audioOut)
}

// injectDueReplies moves scheduled replies whose block has come into the
// control sequence for the next Run.
func (h *Host) injectDueReplies() {
	remaining := h.replies[:0]

	for _, r := range h.replies {
		if r.due > h.block {
			remaining = append(remaining, r)

			continue
		}

		h.seq.Append(0, r.body)

		h.mu.Lock()
		h.injected++
		h.mu.Unlock()
	}

	h.replies = remaining
}

// serviceRequests answers captured dialog requests between blocks.
func (h *Host) serviceRequests(events chan<- recorder.Event) {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()

	for _, req := range pending {
		events <- recorder.Event{
			Session:   h.sessionID,
			RequestID: req.ID,
			Kind:      recorder.KindDialogRequest,
			Detail:    req.Text,
		}

		if h.responder == nil {
			h.log.Info("Dialog dismissed, no responder", "request_id", req.ID)

			continue
		}

		value, respond := h.responder(req)
		if !respond {
			h.log.Info("Dialog dismissed by responder", "request_id", req.ID)

			continue
		}

		h.replies = append(h.replies, scheduledReply{
			body: h.forge.NewSet(req.Property, h.forge.NewBool(value)),
			due:  h.block + h.replyDelay,
		})

		events <- recorder.Event{
			Session:   h.sessionID,
			RequestID: req.ID,
			Kind:      recorder.KindReply,
			Detail:    fmt.Sprintf("%t", value),
		}

		h.log.Info("Reply scheduled", "request_id", req.ID, "value", value, "due_block", h.block+h.replyDelay)
	}
}

// Requests returns a snapshot of all dialog requests captured so far.
func (h *Host) Requests() []Request {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Request, len(h.requests))
	copy(out, h.requests)

	return out
}

// InjectedReplies reports how many replies have entered the control stream.
func (h *Host) InjectedReplies() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.injected
}

// SessionID returns the identifier recorded for this harness run.
func (h *Host) SessionID() string {
	return h.sessionID
}

// Registry exposes the host's URID registry, mainly for tests that need to
// resolve the same tokens the plugin sees.
func (h *Host) Registry() *reqval.URIDRegistry {
	return h.registry
}

// Close tears down the plugin. The host cannot be reused afterwards.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true
	h.plugin.Close()
	h.log.Info("Host closed")
}
