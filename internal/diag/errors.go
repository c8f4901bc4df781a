// Package diag holds the error-kind taxonomy and structured logger shared
// by the delegate's packages: nodemgr, layout, activation, ops,
// graphbuilder, delegate, cache and abi classify failures through
// ErrorKind, and the delegate package logs through Logger.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a failure the way a host runtime needs to branch on
// it: silently during probing, loudly during Init/Eval.
type ErrorKind int

const (
	// KindUnknown is the zero value; never returned deliberately.
	KindUnknown ErrorKind = iota

	// Probe-time kinds. A node rejected with one of these is simply left
	// out of the delegate's subgraph; nothing is logged above Trace.
	KindUnsupportedOp
	KindUnsupportedType
	KindUnsupportedRank
	KindUnsupportedAttribute

	// Structural kinds raised while the Graph Builder links translator
	// outputs to the Node Manager.
	KindMissingProducer
	KindDuplicateProducer
	KindMultipleOutputsUnsupported

	// Target-library and cache kinds raised during Init.
	KindTargetCompileError
	KindCacheMiss
	KindCacheReadError
	KindCacheWriteError
	KindDeviceUnavailable

	// Eval-time kinds.
	KindInferTimeout
	KindInferError

	// Re-entrancy guard.
	KindBusy
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedOp:
		return "unsupported_op"
	case KindUnsupportedType:
		return "unsupported_type"
	case KindUnsupportedRank:
		return "unsupported_rank"
	case KindUnsupportedAttribute:
		return "unsupported_attribute"
	case KindMissingProducer:
		return "missing_producer"
	case KindDuplicateProducer:
		return "duplicate_producer"
	case KindMultipleOutputsUnsupported:
		return "multiple_outputs_unsupported"
	case KindTargetCompileError:
		return "target_compile_error"
	case KindCacheMiss:
		return "cache_miss"
	case KindCacheReadError:
		return "cache_read_error"
	case KindCacheWriteError:
		return "cache_write_error"
	case KindDeviceUnavailable:
		return "device_unavailable"
	case KindInferTimeout:
		return "infer_timeout"
	case KindInferError:
		return "infer_error"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// IsSilent reports whether errors of this kind must never be logged above
// Trace level, per the probe contract: a node that fails one of these
// checks is unsupported, not broken.
func (k ErrorKind) IsSilent() bool {
	switch k {
	case KindUnsupportedOp, KindUnsupportedType, KindUnsupportedRank, KindUnsupportedAttribute:
		return true
	default:
		return false
	}
}

// kindError pairs an ErrorKind with the wrapped cause so callers can branch
// on kind with errors.As without parsing strings.
type kindError struct {
	kind  ErrorKind
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.String()
	}
	return fmt.Sprintf("%s: %v", e.kind, e.cause)
}

func (e *kindError) Unwrap() error { return e.cause }

// New builds a fresh error of the given kind with a message, stack trace
// attached via pkg/errors.
func New(kind ErrorKind, msg string) error {
	return &kindError{kind: kind, cause: errors.New(msg)}
}

// Newf is New with formatting.
func Newf(kind ErrorKind, format string, args ...interface{}) error {
	return &kindError{kind: kind, cause: errors.Errorf(format, args...)}
}

// Wrap attaches a kind and a stack trace to an existing error. Returns nil
// if err is nil, matching errors.Wrap's convention.
func Wrap(err error, kind ErrorKind, msg string) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, cause: errors.Wrap(err, msg)}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, kind ErrorKind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, cause: errors.Wrapf(err, format, args...)}
}

// Kind extracts the ErrorKind from err, walking the Unwrap chain. Returns
// KindUnknown if err does not carry one.
func Kind(err error) ErrorKind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind ErrorKind) bool {
	for err != nil {
		var ke *kindError
		if !errors.As(err, &ke) {
			return false
		}
		if ke.kind == kind {
			return true
		}
		err = ke.cause
	}
	return false
}
