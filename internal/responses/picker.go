// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responses

import (
	"math/rand/v2"
	"sync"
)

// Picker chooses a uniformly random index in [0, n).
type Picker interface {
	Intn(n int) int
}

// randomPicker draws from the process-wide generator.
type randomPicker struct{}

func (randomPicker) Intn(n int) int {
	return rand.IntN(n)
}

// NewRandomPicker returns the default picker.
func NewRandomPicker() Picker {
	return randomPicker{}
}

// seededPicker is a reproducible picker.
type seededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker returns a picker whose choices repeat for the same seed.
func NewSeededPicker(seed uint64) Picker {
	return &seededPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *seededPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}
