// Package nodemgr implements the Node Manager: a write-once registry
// from source tensor index to the target graph node that produces it.
// The Graph Builder consults it to resolve a translator's inputs and
// records each translator's single output back into it.
package nodemgr

import (
	"sync"

	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
	"github.com/anikulk/tflite-openvino-delegate/targetiface"
)

// Manager is the Node Manager. Safe for concurrent use; the teacher's
// runtime package guards its own shared maps the same way (a single
// RWMutex per registry, held only for the map operation itself).
type Manager struct {
	mu    sync.RWMutex
	nodes map[int]targetiface.GraphNode
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{nodes: make(map[int]targetiface.GraphNode)}
}

// Set records node as the producer of source tensor idx. It is an error
// to call Set twice for the same idx: every source tensor has exactly
// one producer, so a second Set means the source graph violated that
// invariant and the build must fail with DuplicateProducer rather than
// silently overwrite the first mapping.
func (m *Manager) Set(idx int, node targetiface.GraphNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.nodes[idx]; exists {
		return diag.Newf(diag.KindDuplicateProducer, "nodemgr: tensor %d already has a producer", idx)
	}
	m.nodes[idx] = node
	return nil
}

// Get resolves the target node producing source tensor idx. Returns
// MissingProducer if no translator has registered a producer for idx
// yet, which happens when the source graph references a tensor out of
// topological order or references one the probe never accepted.
func (m *Manager) Get(idx int) (targetiface.GraphNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, ok := m.nodes[idx]
	if !ok {
		return nil, diag.Newf(diag.KindMissingProducer, "nodemgr: no producer registered for tensor %d", idx)
	}
	return node, nil
}

// Has reports whether idx already has a registered producer, without
// raising an error; used by the Graph Builder to skip re-translating
// constant/parameter tensors it has already materialized.
func (m *Manager) Has(idx int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.nodes[idx]
	return ok
}

// Len returns the number of tensors with a registered producer.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nodes)
}
