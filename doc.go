// Package reqval implements an example plugin that requests a value from the
// host via a UI dialog.
//
// The plugin declares one boolean parameter ("booltest"), passes audio
// through unmodified, and roughly two seconds after instantiation asks the
// host to show a value-request dialog for that parameter. The host's answer
// arrives asynchronously as a patch:Set control event, which the plugin
// validates and logs. It is a conformance fixture for the value-request
// extension, not an effect.
//
// # Instantiation
//
// A host supplies capabilities as a feature list. URI mapping and the
// value-request dialog are required; logging is optional:
//
//	reg := reqval.NewURIDRegistry()
//	p, err := reqval.Instantiate(48000, "", []*reqval.Feature{
//	    {URI: reqval.FeatureURIDMap, Data: reg},
//	    {URI: reqval.FeatureRequestValue, Data: requester},
//	    {URI: reqval.FeatureLog, Data: slog.Default()},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
// # Processing
//
// The host connects ports once and then calls Run once per block from a
// single processing thread:
//
//	var seq reqval.Sequence
//	p.ConnectPort(reqval.PortControl, &seq)
//	p.ConnectPort(reqval.PortAudioIn, in)
//	p.ConnectPort(reqval.PortAudioOut, out)
//	p.Run(uint32(len(in)))
//
// Replies are injected by the host as patch:Set objects built with a Forge
// over the same URID map:
//
//	f := reqval.NewForge(reg)
//	seq.Append(0, f.NewSet(reg.Map(reqval.BoolTestURI), f.NewBool(true)))
//
// # Host harness
//
// The host package drives the plugin in-process for tests and tooling,
// including a scripted dialog responder and an optional sqlite event
// recorder. See the host package documentation and cmd/reqval-host.
//
// # Error Handling
//
// Malformed set messages are logged and discarded, never fatal; the distinct
// discard reasons are exposed as sentinel errors (ErrMissingProperty,
// ErrWrongValueType, ...). A missing required capability aborts
// instantiation with a *FeatureNotFoundError.
package reqval
