// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

// RAND is the sampling surface the dataset generator needs.
type RAND interface {
	// Uint64 returns a uniformly distributed uint64.
	Uint64() uint64
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n), or -1 when n <= 0.
	IntN(int) int
}

// PRNG is a RAND whose state can be captured and replayed.
type PRNG interface {
	RAND
	// Snapshot returns the serialized internal state.
	Snapshot() ([]byte, error)
	// Restore replaces the internal state with a Snapshot.
	Restore([]byte) error
}

// PRNGFactory builds seeded generators.
//
// New(seed) must be deterministic: the same seed yields the same sequence for
// a given implementation and version. Synthetic datasets are only
// reproducible because of this.
type PRNGFactory interface {
	New(int64) PRNG
}

// DefaultPRNG builds PCG64 generators.
type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core wraps a PRNG with the helpers the generator draws from.
type Core struct {
	PRNG
}

func New(rng PRNG) *Core {
	return &Core{rng}
}

// Chance returns true with probability p. p <= 0 never fires, p >= 1 always does.
func (c *Core) Chance(p float64) bool {
	return c.Float64() < p
}

// PickPair returns two distinct indices in [0,n). n must be at least 2.
func (c *Core) PickPair(n int) (int, int) {
	i := c.IntN(n)
	j := c.IntN(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// Between returns a value in [lo,hi].
func (c *Core) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + c.IntN(hi-lo+1)
}
