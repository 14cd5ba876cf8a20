package reqval

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type requestCall struct {
	property  URID
	valueType URID
	features  []*Feature
}

// captureRequester records value requests instead of showing a dialog.
type captureRequester struct {
	calls []requestCall
	err   error
}

func (c *captureRequester) Request(property, valueType URID, features []*Feature) error {
	c.calls = append(c.calls, requestCall{
		property:  property,
		valueType: valueType,
		features:  features,
	})

	return c.err
}

func newTestPlugin(t *testing.T, rate float64) (*Plugin, *URIDRegistry, *captureRequester) {
	t.Helper()

	reg := NewURIDRegistry()
	req := &captureRequester{}

	p, err := Instantiate(rate, "", []*Feature{
		{URI: FeatureURIDMap, Data: reg},
		{URI: FeatureRequestValue, Data: req},
		{URI: FeatureLog, Data: NopLogger()},
	})
	require.NoError(t, err)
	require.NotNil(t, p)

	return p, reg, req
}

func TestInstantiateMissingRequestValue(t *testing.T) {
	reg := NewURIDRegistry()

	p, err := Instantiate(48000, "", []*Feature{
		{URI: FeatureURIDMap, Data: reg},
		{URI: FeatureLog, Data: NopLogger()},
	})
	require.Nil(t, p)
	require.Error(t, err)

	var fnf *FeatureNotFoundError

	require.ErrorAs(t, err, &fnf)
	require.Equal(t, FeatureRequestValue, fnf.URI)
}

func TestInstantiateMissingURIDMap(t *testing.T) {
	p, err := Instantiate(48000, "", []*Feature{
		{URI: FeatureRequestValue, Data: &captureRequester{}},
		{URI: FeatureLog, Data: NopLogger()},
	})
	require.Nil(t, p)

	var fnf *FeatureNotFoundError

	require.ErrorAs(t, err, &fnf)
	require.Equal(t, FeatureURIDMap, fnf.URI)
}

func TestInstantiateWithoutLogFeature(t *testing.T) {
	// Logging is optional; instantiation must succeed without it.
	reg := NewURIDRegistry()

	p, err := Instantiate(48000, "", []*Feature{
		{URI: FeatureURIDMap, Data: reg},
		{URI: FeatureRequestValue, Data: &captureRequester{}},
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	p.Close()
}

func TestInstantiateIgnoresUnknownFeatures(t *testing.T) {
	reg := NewURIDRegistry()

	p, err := Instantiate(48000, "", []*Feature{
		nil,
		{URI: "urn:example:unknown", Data: 42},
		{URI: FeatureURIDMap, Data: reg},
		{URI: FeatureRequestValue, Data: &captureRequester{}},
		{URI: FeatureLog, Data: NopLogger()},
	})
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestConnectPort(t *testing.T) {
	p, _, _ := newTestPlugin(t, 48000)

	var seq Sequence

	require.NoError(t, p.ConnectPort(PortControl, &seq))
	require.NoError(t, p.ConnectPort(PortAudioIn, make([]float32, 64)))
	require.NoError(t, p.ConnectPort(PortAudioOut, make([]float32, 64)))

	// Unknown port indices are ignored.
	require.NoError(t, p.ConnectPort(42, "whatever"))

	// Wrong buffer types are rejected.
	require.ErrorIs(t, p.ConnectPort(PortControl, make([]float32, 64)), ErrInvalidPort)
	require.ErrorIs(t, p.ConnectPort(PortAudioIn, &seq), ErrInvalidPort)
	require.ErrorIs(t, p.ConnectPort(PortAudioOut, 7), ErrInvalidPort)
}

func TestRunPassesAudioThrough(t *testing.T) {
	p, _, _ := newTestPlugin(t, 48000)

	in := []float32{0.5, -0.25, 1.0, 0}
	out := make([]float32, 4)

	require.NoError(t, p.ConnectPort(PortAudioIn, in))
	require.NoError(t, p.ConnectPort(PortAudioOut, out))

	p.Run(4)
	require.Equal(t, in, out)

	// Zero-length blocks are a no-op, not an error.
	p.Run(0)
}

func TestRunSkipsCopyWhenAliased(t *testing.T) {
	p, _, _ := newTestPlugin(t, 48000)

	buf := []float32{0.5, -0.25, 1.0, 0}

	require.NoError(t, p.ConnectPort(PortAudioIn, buf))
	require.NoError(t, p.ConnectPort(PortAudioOut, buf))

	p.Run(4)
	require.Equal(t, []float32{0.5, -0.25, 1.0, 0}, buf)
}

func TestRequestFiresExactlyOnce(t *testing.T) {
	const (
		rate      = 48000.0
		blockSize = 1024
	)

	p, _, req := newTestPlugin(t, rate)

	firedAt := -1

	for i := range 200 {
		p.Run(blockSize)

		if len(req.calls) > 0 && firedAt < 0 {
			firedAt = i
		}
	}

	// Fires during the block in which cumulative frames first exceed
	// 2*rate: 94*1024 = 96256 > 96000.
	require.Equal(t, 94, firedAt)
	require.Len(t, req.calls, 1)
}

func TestRequestDoesNotFireEarly(t *testing.T) {
	p, _, req := newTestPlugin(t, 48000)

	// The last of these checks sees 93*1024 = 95232 <= 96000.
	for range 94 {
		p.Run(1024)
	}

	require.Empty(t, req.calls)
}

func TestRequestPayload(t *testing.T) {
	p, reg, req := newTestPlugin(t, 100)

	p.Run(150)
	require.Empty(t, req.calls)

	p.Run(150) // counter now 150 within the check: 150 <= 200, still idle
	p.Run(150) // counter 300 > 200: fires
	require.Len(t, req.calls, 1)

	call := req.calls[0]
	require.Equal(t, reg.Map(BoolTestURI), call.property)
	require.Equal(t, reg.Map("http://lv2plug.in/ns/ext/atom#Bool"), call.valueType)

	data, ok := FindFeature(call.features, FeatureDialogMessage)
	require.True(t, ok)

	msg, ok := data.(*DialogMessage)
	require.True(t, ok)
	require.Equal(t, "FOO BAR!", msg.Text)
	require.False(t, msg.RequiresReturn)
}

func TestRequestErrorIsNotRetried(t *testing.T) {
	p, _, req := newTestPlugin(t, 100)
	req.err = errors.New("dialog unavailable")

	for range 10 {
		p.Run(100)
	}

	// The failed request is not retried: one shot means one shot.
	require.Len(t, req.calls, 1)
}

func TestParseSetValidationLadder(t *testing.T) {
	p, reg, _ := newTestPlugin(t, 48000)
	f := NewForge(reg)
	boolTest := reg.Map(BoolTestURI)

	tests := []struct {
		name    string
		obj     *Object
		wantErr error
		want    bool
	}{
		{
			name: "wellformed true",
			obj:  mustObject(t, f.NewSet(boolTest, f.NewBool(true))),
			want: true,
		},
		{
			name: "wellformed false",
			obj:  mustObject(t, f.NewSet(boolTest, f.NewBool(false))),
			want: false,
		},
		{
			name:    "missing property",
			obj:     &Object{ObjectType: f.PatchSet},
			wantErr: ErrMissingProperty,
		},
		{
			name: "non-URID property",
			obj: &Object{
				ObjectType: f.PatchSet,
				Properties: []Property{
					{Key: f.PatchProperty, Value: f.NewBool(true)},
					{Key: f.PatchValue, Value: f.NewBool(true)},
				},
			},
			wantErr: ErrWrongPropertyType,
		},
		{
			name: "missing value",
			obj: &Object{
				ObjectType: f.PatchSet,
				Properties: []Property{
					{Key: f.PatchProperty, Value: f.NewURID(boolTest)},
				},
			},
			wantErr: ErrMissingValue,
		},
		{
			name:    "unknown property",
			obj:     mustObject(t, f.NewSet(reg.Map("urn:example:other"), f.NewBool(true))),
			wantErr: ErrUnknownProperty,
		},
		{
			name:    "float value for bool property",
			obj:     mustObject(t, f.NewSet(boolTest, f.NewFloat(1.0))),
			wantErr: ErrWrongValueType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.parseSet(tt.obj)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRunObservesReplyFromControlPort(t *testing.T) {
	var buf bytes.Buffer

	reg := NewURIDRegistry()
	req := &captureRequester{}

	p, err := Instantiate(48000, "", []*Feature{
		{URI: FeatureURIDMap, Data: reg},
		{URI: FeatureRequestValue, Data: req},
		{URI: FeatureLog, Data: slog.New(slog.NewTextHandler(&buf, nil))},
	})
	require.NoError(t, err)

	f := NewForge(reg)

	var seq Sequence

	require.NoError(t, p.ConnectPort(PortControl, &seq))

	seq.Append(0, f.NewSet(reg.Map(BoolTestURI), f.NewBool(true)))
	p.Run(64)

	require.Contains(t, buf.String(), "Received boolean")
	require.Contains(t, buf.String(), "value=true")
}

func TestRunIgnoresNonSetEvents(t *testing.T) {
	var buf bytes.Buffer

	reg := NewURIDRegistry()
	req := &captureRequester{}

	p, err := Instantiate(48000, "", []*Feature{
		{URI: FeatureURIDMap, Data: reg},
		{URI: FeatureRequestValue, Data: req},
		{URI: FeatureLog, Data: slog.New(slog.NewTextHandler(&buf, nil))},
	})
	require.NoError(t, err)

	f := NewForge(reg)

	var seq Sequence

	require.NoError(t, p.ConnectPort(PortControl, &seq))

	// Non-object atoms and foreign object types are skipped silently.
	seq.Append(0, f.NewBool(true))
	seq.Append(1, nil)
	seq.Append(2, f.NewObject(reg.Map("urn:example:otype")))
	p.Run(64)

	require.Empty(t, buf.String())
}

func TestExtensionData(t *testing.T) {
	p, _, _ := newTestPlugin(t, 48000)

	require.Nil(t, p.ExtensionData(PluginURI))
	require.Nil(t, p.ExtensionData(""))
}

func TestClose(t *testing.T) {
	p, _, _ := newTestPlugin(t, 100)

	freed := false
	p.dialogMsg.Free = func(string) { freed = true }

	p.Close()
	require.True(t, freed)
	require.Nil(t, p.dialogFeatures)
}

func mustObject(t *testing.T, a *Atom) *Object {
	t.Helper()

	obj, ok := a.Object()
	require.True(t, ok)

	return obj
}
