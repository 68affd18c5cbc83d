// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env implements a named string store with write interception,
// modelled on the environment of a boot loader.
//
// A Store is safe for concurrent use. Concurrent writers of the same key are
// last-writer-wins.
package env

import (
	"fmt"
	"sort"
	"sync"
)

// WriteHook intercepts writes to a key. It receives the value being written
// and returns the value to store. A non-nil error rejects the write.
type WriteHook func(value string) (string, error)

// Store is a set of named string variables.
type Store struct {
	mu    sync.RWMutex
	vars  map[string]string
	hooks map[string]WriteHook
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		vars:  make(map[string]string),
		hooks: make(map[string]WriteHook),
	}
}

// Get returns the value of key and whether it is set.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[key]
	return v, ok
}

// Set writes value to key, passing it through the write hook of key first.
// The hook runs without the store lock held, so it may read or write other
// keys of the same store.
func (s *Store) Set(key, value string) error {
	s.mu.RLock()
	hook := s.hooks[key]
	s.mu.RUnlock()

	if hook != nil {
		v, err := hook(value)
		if err != nil {
			return fmt.Errorf("write to %q rejected: %w", key, err)
		}
		value = v
	}

	s.mu.Lock()
	s.vars[key] = value
	s.mu.Unlock()
	return nil
}

// Unset removes key. Hooks are not consulted.
func (s *Store) Unset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vars, key)
}

// RegisterWriteHook installs hook for key, replacing any previous hook.
// A nil hook removes it.
func (s *Store) RegisterWriteHook(key string, hook WriteHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hook == nil {
		delete(s.hooks, key)
		return
	}
	s.hooks[key] = hook
}

// UnregisterWriteHook removes the hook of key, if any.
func (s *Store) UnregisterWriteHook(key string) {
	s.RegisterWriteHook(key, nil)
}

// Keys returns the names of all set variables, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
