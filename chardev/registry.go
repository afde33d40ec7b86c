// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"errors"
	"fmt"
	"sync"
)

// Registry holds the open handles served by a process, by device name.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Handle
	ordered []string
}

// Add registers h under name. Names must be unique.
func (r *Registry) Add(name string, h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byName == nil {
		r.byName = map[string]Handle{}
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("chardev: device %q registered twice", name)
	}
	r.byName[name] = h
	r.ordered = append(r.ordered, name)
	return nil
}

// Get returns the handle registered under name.
func (r *Registry) Get(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byName[name]
	return h, ok
}

// All returns the handles in registration order.
func (r *Registry) All() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Handle, 0, len(r.ordered))
	for _, n := range r.ordered {
		out = append(out, r.byName[n])
	}
	return out
}

// Close closes every handle, in reverse registration order, and empties the
// registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for i := len(r.ordered) - 1; i >= 0; i-- {
		n := r.ordered[i]
		if err := r.byName[n].Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n, err))
		}
	}
	r.byName = nil
	r.ordered = nil
	return errors.Join(errs...)
}
