// Package host drives the reqval plugin in-process.
//
// It is the harness side of the value-request handshake: it owns the URID
// registry, hands the plugin its capabilities, runs the processing loop with
// audio-thread discipline, answers dialog requests with a scripted responder,
// and re-injects the answer as a patch:Set control event, the same path a
// real host's UI would use. Sessions can optionally be recorded to sqlite via
// the recorder subpackage.
package host
