package scheduler

import (
	"sync"
	"time"
)

// Status is a point-in-time health snapshot for one component.
type Status struct {
	Healthy     bool
	LastCheck   time.Time
	LastSuccess time.Time
	LastError   error
	Message     string
}

// Health tracks component health across scheduler cycles.
type Health struct {
	mu         sync.RWMutex
	components map[string]Status
}

// NewHealth creates a new health tracker.
func NewHealth() *Health {
	return &Health{components: make(map[string]Status)}
}

// SetHealthy marks a component as healthy.
func (h *Health) SetHealthy(component, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	s := h.components[component]
	s.Healthy = true
	s.LastCheck = now
	s.LastSuccess = now
	s.LastError = nil
	s.Message = message
	h.components[component] = s
}

// SetUnhealthy marks a component as unhealthy.
func (h *Health) SetUnhealthy(component string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.components[component]
	s.Healthy = false
	s.LastCheck = time.Now()
	s.LastError = err
	s.Message = err.Error()
	h.components[component] = s
}

// Status returns a component's snapshot and whether it has been tracked.
func (h *Health) Status(component string) (Status, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s, ok := h.components[component]
	return s, ok
}

// All returns a snapshot of every tracked component.
func (h *Health) All() map[string]Status {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]Status, len(h.components))
	for name, s := range h.components {
		out[name] = s
	}
	return out
}

// Healthy reports whether every tracked component is healthy.
func (h *Health) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.components {
		if !s.Healthy {
			return false
		}
	}
	return true
}
