// Command ovdelegate-smoke exercises the full probe -> Init -> Eval
// lifecycle against a small synthetic subgraph, the way sublrun drove
// the teacher's runtime engine end to end from the command line. It
// takes no real TFLite model: the graph is a fixed single-node Add,
// run against the in-memory fakeov target library, so the whole
// lifecycle can be exercised without a host process or a real target
// library.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/anikulk/tflite-openvino-delegate/activation"
	"github.com/anikulk/tflite-openvino-delegate/delegate"
	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/internal/fakeov"
	"github.com/anikulk/tflite-openvino-delegate/ops"
)

func floatToBytes(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func float32BitsToFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func main() {
	var (
		cacheDir   = flag.String("cache-dir", "", "Cache directory for the compiled model")
		modelToken = flag.String("model-token", "smoke", "Cache key for the compiled model")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		version    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *version {
		fmt.Println("ovdelegate-smoke - TFLite/OpenVINO delegate smoke test v1.0.0")
		return
	}

	logger := diag.NewLogger("ovdelegate-smoke")
	core := delegate.New(fakeov.NewCore(), fakeov.NewFactory(), logger)

	src := newAddGraph()
	for i := 0; i < src.NodeCount(); i++ {
		if !core.IsNodeSupportedByDelegate(src, i) {
			log.Fatalf("node %d rejected by probe", i)
		}
	}
	if *verbose {
		fmt.Println("probe accepted all nodes")
	}

	settings := delegate.Settings{CacheDir: *cacheDir, ModelToken: *modelToken}
	if err := core.Init(src, []int{2}, settings); err != nil {
		log.Fatalf("init failed: %v", err)
	}
	if *verbose {
		fmt.Printf("init succeeded, state=%s\n", core.State())
	}

	if err := core.Eval(src); err != nil {
		log.Fatalf("eval failed: %v", err)
	}

	out := src.outputValue()
	fmt.Printf("result = %v\n", out)
	os.Exit(0)
}

// smokeTensor and smokeNode are a minimal hostiface implementation
// sized for exactly this command's one fixed graph.
type smokeTensor struct {
	shape []int64
	typ   hostiface.DataType
	alloc hostiface.AllocationClass
	raw   []byte
}

func (t *smokeTensor) Shape() []int64                       { return t.shape }
func (t *smokeTensor) Type() hostiface.DataType              { return t.typ }
func (t *smokeTensor) Allocation() hostiface.AllocationClass { return t.alloc }
func (t *smokeTensor) Raw() []byte                           { return t.raw }

type smokeNode struct {
	op   hostiface.OpKind
	ins  []int
	outs []int
}

func (n *smokeNode) OpKind() hostiface.OpKind { return n.op }
func (n *smokeNode) Inputs() []int            { return n.ins }
func (n *smokeNode) Outputs() []int           { return n.outs }
func (n *smokeNode) Attrs() interface{}       { return ops.AddAttrs{Activation: activation.None} }

type smokeGraph struct {
	tensors map[int]*smokeTensor
	nodes   []*smokeNode
}

func (g *smokeGraph) Tensor(idx int) hostiface.SourceTensor {
	t, ok := g.tensors[idx]
	if !ok {
		return nil
	}
	return t
}
func (g *smokeGraph) TensorCount() int { return len(g.tensors) }
func (g *smokeGraph) Node(idx int) hostiface.SourceNode {
	if idx < 0 || idx >= len(g.nodes) {
		return nil
	}
	return g.nodes[idx]
}
func (g *smokeGraph) NodeCount() int { return len(g.nodes) }

func (g *smokeGraph) outputValue() float32 {
	raw := g.tensors[2].raw
	return float32BitsToFloat(raw)
}

func newAddGraph() *smokeGraph {
	g := &smokeGraph{tensors: make(map[int]*smokeTensor)}
	g.tensors[0] = &smokeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic, raw: floatToBytes(2)}
	g.tensors[1] = &smokeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic, raw: floatToBytes(3)}
	g.tensors[2] = &smokeTensor{shape: []int64{1}, typ: hostiface.Float32, alloc: hostiface.Dynamic, raw: make([]byte, 4)}
	g.nodes = []*smokeNode{{op: hostiface.OpAdd, ins: []int{0, 1}, outs: []int{2}}}
	return g
}
