package host

import (
	"log/slog"

	"github.com/lv2go/reqval/host/recorder"
)

// defaultReplyDelay is how many blocks pass between a captured dialog
// request and the injected reply.
const defaultReplyDelay = 1

type hostOptions struct {
	logger     *slog.Logger
	recorder   *recorder.Recorder
	responder  Responder
	replyDelay uint64
}

// Option configures a Host using the functional options pattern.
type Option func(*hostOptions)

func applyOptions(opts []Option) *hostOptions {
	options := &hostOptions{
		replyDelay: defaultReplyDelay,
		responder:  func(Request) (bool, bool) { return true, true },
	}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for the host and the plugin's log capability.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *hostOptions) {
		o.logger = logger
	}
}

// WithRecorder attaches a session recorder. The caller keeps ownership and
// closes it after the host is done.
func WithRecorder(rec *recorder.Recorder) Option {
	return func(o *hostOptions) {
		o.recorder = rec
	}
}

// WithResponder sets the scripted answer for dialog requests.
// The default responder answers true to everything. Passing nil leaves every
// dialog unanswered.
func WithResponder(responder Responder) Option {
	return func(o *hostOptions) {
		o.responder = responder
	}
}

// WithReplyDelay sets how many blocks after a request the reply is injected.
func WithReplyDelay(blocks uint64) Option {
	return func(o *hostOptions) {
		o.replyDelay = blocks
	}
}
