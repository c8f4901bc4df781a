package delegate

import (
	"sync"

	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// State is the Delegate Core's lifecycle state machine: New until the
// first Init attempt, then Ready or Failed depending on its outcome,
// until Destroy moves it to Gone. There is no path back to New.
type State int

const (
	StateNew State = iota
	StateReady
	StateFailed
	StateGone
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateGone:
		return "gone"
	default:
		return "unknown"
	}
}

// Settings is the host-supplied configuration for one delegate
// instance, decoded by the abi package from the opaque settings blob.
type Settings struct {
	CacheDir   string
	ModelToken string
}

// Core is the Delegate Core: it owns the probe, the build/compile
// lifecycle, and Eval, guarded against re-entrant Eval calls the way
// the teacher's runtime.Engine guards its own shared state with a
// single mutex held only for the critical section.
type Core struct {
	factory targetiface.Factory
	target  targetiface.Core
	logger  *diag.Logger

	mu       sync.Mutex
	state    State
	settings Settings

	compiled      targetiface.CompiledModel
	infer         targetiface.InferRequest
	computeInputs []int
	outputTensors []int
	busy          bool
}

// New constructs a Core in StateNew, bound to the given target Core
// and Factory. logger may be nil, in which case probe rejections and
// build/eval failures are simply not logged.
func New(target targetiface.Core, factory targetiface.Factory, logger *diag.Logger) *Core {
	return &Core{target: target, factory: factory, logger: logger, state: StateNew}
}

// State returns the Core's current lifecycle state.
func (d *Core) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Destroy moves the Core to StateGone. Any subsequent Init or Eval
// call fails; Destroy itself is idempotent.
func (d *Core) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateGone
	d.compiled = nil
	d.infer = nil
}
