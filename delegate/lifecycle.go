package delegate

import (
	"github.com/anikulk/tflite-openvino-delegate/cache"
	"github.com/anikulk/tflite-openvino-delegate/graphbuilder"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
)

// Init grounds on openvino_delegate_core.cc's Init/CreateModel: check
// the target device is available, try a cache hit if cache_dir and
// model_token are both set, and only fall back to building and
// compiling fresh, optionally writing the result back to the cache,
// when no usable cache exists. Init may only be called once per Core;
// it transitions StateNew to StateReady or StateFailed and never
// revisits either.
func (d *Core) Init(src hostiface.SourceContext, outputTensors []int, settings Settings) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateNew {
		return diag.Newf(diag.KindTargetCompileError, "delegate: Init called in state %s, want %s", d.state, StateNew)
	}
	d.settings = settings

	devices, err := d.target.AvailableDevices()
	if err != nil {
		d.state = StateFailed
		return diag.Wrap(err, diag.KindDeviceUnavailable, "delegate: list available devices")
	}
	if !contains(devices, "CPU") {
		d.state = StateFailed
		return diag.New(diag.KindDeviceUnavailable, "delegate: CPU device not available")
	}

	if d.settings.CacheDir != "" && d.settings.ModelToken != "" {
		if ok := d.tryInitFromCache(src, outputTensors); ok {
			d.state = StateReady
			return nil
		}
	}

	if err := d.initFresh(src, outputTensors); err != nil {
		d.state = StateFailed
		return err
	}
	d.state = StateReady
	return nil
}

// tryInitFromCache grounds on BuildModelFromCache: it re-derives
// compute_inputs_ from the source graph directly, without invoking the
// Graph Builder, then reads and compiles the cached model. Any failure
// along this path is logged and treated as a cache miss, not a fatal
// error — Init falls through to building fresh.
func (d *Core) tryInitFromCache(src hostiface.SourceContext, outputTensors []int) bool {
	if !cache.CanRead(d.settings.CacheDir) {
		return false
	}
	artifact := cache.Paths(d.settings.CacheDir, d.settings.ModelToken)
	if !artifact.Exists() {
		return false
	}
	manifest, err := cache.ReadManifest(artifact.Manifest)
	if err != nil {
		d.logFailure(diag.Wrap(err, diag.KindCacheReadError, "delegate: read cache manifest"))
		return false
	}
	if manifest.ModelToken != d.settings.ModelToken || manifest.NodeCount != src.NodeCount() {
		d.logFailure(diag.New(diag.KindCacheReadError, "delegate: cache manifest does not match current subgraph"))
		return false
	}
	model, err := d.target.ReadModel(artifact.XML)
	if err != nil {
		d.logFailure(diag.Wrap(err, diag.KindCacheReadError, "delegate: read cached model"))
		return false
	}
	compiled, err := d.target.CompileModel(model, "CPU")
	if err != nil {
		d.logFailure(diag.Wrap(err, diag.KindTargetCompileError, "delegate: compile cached model"))
		return false
	}
	infer, err := compiled.CreateInferRequest()
	if err != nil {
		d.logFailure(diag.Wrap(err, diag.KindTargetCompileError, "delegate: create infer request for cached model"))
		return false
	}
	d.compiled = compiled
	d.infer = infer
	d.computeInputs = graphbuilder.ComputeInputs(src)
	d.outputTensors = outputTensors
	return true
}

// initFresh grounds on InitializeBuilder/BuildModel/CompileAndInfer:
// run the Graph Builder, construct and compile the model, and — only
// if the cache directory is both configured and writable — serialize
// the result and write the manifest. A non-writable cache directory is
// a warning, never fatal.
func (d *Core) initFresh(src hostiface.SourceContext, outputTensors []int) error {
	result, err := graphbuilder.Build(src, d.factory, outputTensors)
	if err != nil {
		return err
	}
	model, err := d.target.BuildModel(result.ResultNodes, result.InputParams)
	if err != nil {
		return diag.Wrap(err, diag.KindTargetCompileError, "delegate: build model")
	}
	compiled, err := d.target.CompileModel(model, "CPU")
	if err != nil {
		return diag.Wrap(err, diag.KindTargetCompileError, "delegate: compile model")
	}
	infer, err := compiled.CreateInferRequest()
	if err != nil {
		return diag.Wrap(err, diag.KindTargetCompileError, "delegate: create infer request")
	}
	d.compiled = compiled
	d.infer = infer
	d.computeInputs = result.ComputeInputs
	d.outputTensors = outputTensors

	if d.settings.CacheDir != "" && d.settings.ModelToken != "" {
		d.tryWriteCache(src)
	}
	return nil
}

func (d *Core) tryWriteCache(src hostiface.SourceContext) {
	if !cache.CanWrite(d.settings.CacheDir) {
		if d.logger != nil {
			d.logger.Warn("cache directory not writable, skipping cache write", "cache_dir", d.settings.CacheDir)
		}
		return
	}
	artifact := cache.Paths(d.settings.CacheDir, d.settings.ModelToken)
	if err := d.compiled.SerializeTo(artifact.XML, artifact.Bin); err != nil {
		d.logFailure(diag.Wrap(err, diag.KindCacheWriteError, "delegate: serialize compiled model"))
		return
	}
	manifest := cache.Manifest{ModelToken: d.settings.ModelToken, NodeCount: src.NodeCount()}
	if err := cache.WriteManifest(artifact.Manifest, manifest); err != nil {
		d.logFailure(diag.Wrap(err, diag.KindCacheWriteError, "delegate: write cache manifest"))
	}
}

func (d *Core) logFailure(err error) {
	if d.logger != nil {
		d.logger.LogBuildFailure(-1, err)
	}
}

func contains(vals []string, want string) bool {
	for _, v := range vals {
		if v == want {
			return true
		}
	}
	return false
}
