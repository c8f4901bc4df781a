package delegate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/internal/fakeov"
	"github.com/anikulk/tflite-openvino-delegate/ops"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

func addGraph() *fakeSrc {
	src := newFakeSrc()
	src.tensors[0] = &fakeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic, raw: f32Bytes(1)}
	src.tensors[1] = &fakeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic, raw: f32Bytes(2)}
	src.tensors[2] = &fakeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic, raw: make([]byte, 4)}
	src.nodes = []*fakeNode{{op: hostiface.OpAdd, ins: []int{0, 1}, outs: []int{2}, attrs: ops.AddAttrs{Activation: activation.None}}}
	return src
}

// rejectingFactory fails every Parameter call, so an Init that reaches
// the Graph Builder for a graph with runtime inputs cannot succeed.
type rejectingFactory struct{ targetiface.Factory }

func (rejectingFactory) Parameter(shape []int64, t targetiface.ElementType) (targetiface.GraphNode, error) {
	return nil, diag.New(diag.KindTargetCompileError, "rejectingFactory: graph builder invoked")
}

func TestInitFreshBuildSucceeds(t *testing.T) {
	d := newTestCore()
	src := addGraph()
	require.NoError(t, d.Init(src, []int{2}, Settings{}))
	assert.Equal(t, StateReady, d.State())
}

func TestInitTwiceRejected(t *testing.T) {
	d := newTestCore()
	src := addGraph()
	require.NoError(t, d.Init(src, []int{2}, Settings{}))
	err := d.Init(src, []int{2}, Settings{})
	require.Error(t, err)
}

func TestInitCacheMissFallsThroughToFresh(t *testing.T) {
	d := newTestCore()
	src := addGraph()
	dir := t.TempDir()
	require.NoError(t, d.Init(src, []int{2}, Settings{CacheDir: dir, ModelToken: "tok"}))
	assert.Equal(t, StateReady, d.State())
}

func TestInitWritesCacheThenHitsOnSecondCore(t *testing.T) {
	dir := t.TempDir()
	sharedTarget := fakeov.NewCore() // cache artifacts live in this Core's in-memory "disk"

	d1 := New(sharedTarget, fakeov.NewFactory(), diag.NewLogger("test"))
	src1 := addGraph()
	require.NoError(t, d1.Init(src1, []int{2}, Settings{CacheDir: dir, ModelToken: "tok"}))
	require.NoError(t, d1.Eval(src1))
	assert.FileExists(t, filepath.Join(dir, "tok.xml"))
	assert.FileExists(t, filepath.Join(dir, "tok.bin"))

	// d2's factory rejects every node, so its Init only succeeds through
	// the cache-hit path.
	d2 := New(sharedTarget, rejectingFactory{}, diag.NewLogger("test"))
	src2 := addGraph()
	require.NoError(t, d2.Init(src2, []int{2}, Settings{CacheDir: dir, ModelToken: "tok"}))
	require.NoError(t, d2.Eval(src2))

	got := bytesToF32Slice(src2.tensors[2].raw)
	assert.Equal(t, float32(3), got[0])
}

func TestInitNonWritableCacheDirIsWarningNotFatal(t *testing.T) {
	d := newTestCore()
	src := addGraph()
	// A cache dir that doesn't exist can't be opened for the
	// write-probe; Init must still succeed fresh.
	err := d.Init(src, []int{2}, Settings{CacheDir: "/nonexistent/cache/dir", ModelToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, StateReady, d.State())
}

func TestInitDeviceUnavailableFailsState(t *testing.T) {
	d := New(&noDeviceCore{}, fakeov.NewFactory(), diag.NewLogger("test"))
	src := addGraph()
	err := d.Init(src, []int{2}, Settings{})
	require.Error(t, err)
	assert.Equal(t, StateFailed, d.State())
}

// noDeviceCore reports no devices available, forcing Init's
// device-check branch.
type noDeviceCore struct{}

func (c *noDeviceCore) AvailableDevices() ([]string, error) { return nil, nil }
func (c *noDeviceCore) BuildModel(resultNodes, inputParams []targetiface.GraphNode) (targetiface.Model, error) {
	return nil, nil
}
func (c *noDeviceCore) ReadModel(xmlPath string) (targetiface.Model, error) { return nil, nil }
func (c *noDeviceCore) CompileModel(m targetiface.Model, device string) (targetiface.CompiledModel, error) {
	return nil, nil
}
