// Package abi is the stable plugin surface a host process loads: a
// fixed descriptor, a settings decoder from the host's opaque
// key/value blob into delegate.Settings, and the capability list a
// host can query before ever constructing a Core. Nothing in this
// package is a C calling convention itself — that binding lives
// outside this module — but the three entry points here (Descriptor,
// DecodeSettings, Capabilities) are the stable Go surface a cgo or
// plugin shim wraps.
package abi

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/anikulk/tflite-openvino-delegate/delegate"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/ops"
)

// Descriptor identifies this delegate to a host that may have several
// plugins registered.
type Descriptor struct {
	Name    string
	Version string
}

// PluginDescriptor is this delegate's fixed identity.
var PluginDescriptor = Descriptor{
	Name:    "intel_openvino_delegate",
	Version: "1.0.0",
}

// rawSettings mirrors the field names a host's settings blob uses
// (snake_case, as TFLite delegate options typically arrive), decoded
// into delegate.Settings via mapstructure rather than a hand-rolled
// type switch over map[string]any.
type rawSettings struct {
	CacheDir   string `mapstructure:"cache_dir"`
	ModelToken string `mapstructure:"model_token"`
}

// DecodeSettings decodes a host's opaque settings map into
// delegate.Settings. Unknown keys are ignored; missing keys leave the
// corresponding field at its zero value, which Init already treats as
// "cache disabled".
func DecodeSettings(raw map[string]interface{}) (delegate.Settings, error) {
	var decoded rawSettings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return delegate.Settings{}, diag.Wrap(err, diag.KindTargetCompileError, "abi: build settings decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return delegate.Settings{}, diag.Wrap(err, diag.KindTargetCompileError, "abi: decode settings")
	}
	return delegate.Settings{CacheDir: decoded.CacheDir, ModelToken: decoded.ModelToken}, nil
}

// Capabilities lists every op kind this delegate's translator catalog
// recognizes, letting a host decide whether to even attempt
// delegation before probing a single node.
func Capabilities() []hostiface.OpKind {
	kinds := make([]hostiface.OpKind, 0, len(ops.Catalog))
	for k := range ops.Catalog {
		kinds = append(kinds, k)
	}
	return kinds
}
