package delegate

import (
	"time"

	"github.com/anikulk/tflite-openvino-delegate/hostiface"
	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
)

// inferTimeout matches the original kernel's fixed 10-second
// wait_for budget.
const inferTimeout = 10 * time.Second

// Eval grounds on OpenVINODelegateKernel::Eval: copy each compute
// input's host bytes into the compiled InferRequest's matching input
// port, run the request asynchronously, wait up to inferTimeout, then
// copy each output port's bytes back to the host's output tensors. A
// second Eval call that arrives while one is already running fails
// immediately with Busy rather than queuing or blocking.
func (d *Core) Eval(src hostiface.SourceContext) error {
	d.mu.Lock()
	if d.state != StateReady {
		d.mu.Unlock()
		return diag.Newf(diag.KindTargetCompileError, "delegate: Eval called in state %s, want %s", d.state, StateReady)
	}
	if d.busy {
		d.mu.Unlock()
		return diag.New(diag.KindBusy, "delegate: Eval already in progress")
	}
	d.busy = true
	infer := d.infer
	computeInputs := d.computeInputs
	outputTensors := d.outputTensors
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.busy = false
		d.mu.Unlock()
	}()

	for i, tensorIdx := range computeInputs {
		t := src.Tensor(tensorIdx)
		if t == nil {
			return diag.Newf(diag.KindInferError, "delegate: input tensor %d not found", tensorIdx)
		}
		port, err := infer.InputPort(i)
		if err != nil {
			return diag.Wrap(err, diag.KindInferError, "delegate: resolve input port")
		}
		copy(port.Bytes(), t.Raw())
	}

	if err := infer.StartAsync(); err != nil {
		d.logEvalFailure(err)
		return diag.Wrap(err, diag.KindInferError, "delegate: start async infer")
	}
	if err := infer.Wait(inferTimeout); err != nil {
		d.logEvalFailure(err)
		return diag.Wrap(err, diag.KindInferTimeout, "delegate: wait for infer")
	}

	for i, tensorIdx := range outputTensors {
		t := src.Tensor(tensorIdx)
		if t == nil {
			return diag.Newf(diag.KindInferError, "delegate: output tensor %d not found", tensorIdx)
		}
		port, err := infer.OutputPort(i)
		if err != nil {
			return diag.Wrap(err, diag.KindInferError, "delegate: resolve output port")
		}
		copy(t.Raw(), port.Bytes())
	}
	return nil
}

func (d *Core) logEvalFailure(err error) {
	if d.logger != nil {
		d.logger.LogEvalFailure(err)
	}
}
