// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instancemap holds the (short address, instance number) ->
// instance type side table populated by device-instance discovery and
// consulted by the codec when a 24-bit frame's addressing scheme alone
// cannot resolve which instance type produced it. A small read-mostly
// map guarded by a RWMutex, in the same spirit as the teacher's
// Authorities map[string]uid.AuthorityObjectUID field: a mutable side
// table populated during one protocol flow and consulted during later
// ones.
package instancemap

import "sync"

// Key identifies one instance on one control device.
type Key struct {
	ShortAddr uint8
	Instance  uint8
}

// Entry is one discovered (address, instance) -> type association, the
// shape a discovery sequence accumulates and hands to PutAll.
type Entry struct {
	ShortAddr uint8
	Instance  uint8
	Type      uint8
}

// Map is a thread-safe short_address/instance -> instance_type table.
// The zero value is ready to use.
type Map struct {
	mu sync.RWMutex
	m  map[Key]uint8
}

// Put records the type of one instance.
func (m *Map) Put(shortAddr, instance, instanceType uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.m == nil {
		m.m = make(map[Key]uint8)
	}
	m.m[Key{shortAddr, instance}] = instanceType
}

// PutAll records every entry from a discovery sequence's result in one
// locked pass.
func (m *Map) PutAll(entries []Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.m == nil {
		m.m = make(map[Key]uint8, len(entries))
	}
	for _, e := range entries {
		m.m[Key{e.ShortAddr, e.Instance}] = e.Type
	}
}

// Lookup returns the recorded instance type for (shortAddr, instance), or
// ok=false if no discovery has recorded it.
func (m *Map) Lookup(shortAddr, instance uint8) (instanceType uint8, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.m[Key{shortAddr, instance}]
	return t, ok
}

// Delete forgets a short address entirely, used when a device is
// withdrawn or re-addressed during a later commissioning pass.
func (m *Map) Delete(shortAddr uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.m {
		if k.ShortAddr == shortAddr {
			delete(m.m, k)
		}
	}
}

// Len reports how many (address, instance) entries are recorded.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}
