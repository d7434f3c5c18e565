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

import "testing"

func TestCoreDeterminism(t *testing.T) {
	c1 := New(Default().New(7))
	c2 := New(Default().New(7))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
	if c1.Float64() != c2.Float64() {
		t.Fatalf("Float64 mismatch")
	}
}

func TestSnapshotRestore(t *testing.T) {
	c := New(Default().New(3))
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	first := c.Uint64()
	if err := c.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if again := c.Uint64(); again != first {
		t.Fatalf("restore did not rewind: %d != %d", again, first)
	}
}

func TestPickPairDistinct(t *testing.T) {
	c := New(Default().New(9))
	for i := 0; i < 1000; i++ {
		a, b := c.PickPair(10)
		if a == b || a < 0 || b < 0 || a >= 10 || b >= 10 {
			t.Fatalf("bad pair (%d,%d)", a, b)
		}
	}
}

func TestHelpersBounds(t *testing.T) {
	c := New(Default().New(11))
	if c.IntN(0) != -1 {
		t.Fatalf("IntN(0) should be -1")
	}
	for i := 0; i < 500; i++ {
		v := c.Between(1, 28)
		if v < 1 || v > 28 {
			t.Fatalf("Between out of range: %d", v)
		}
		if f := c.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
	if c.Chance(0) {
		t.Fatalf("Chance(0) fired")
	}
	if !c.Chance(1) {
		t.Fatalf("Chance(1) did not fire")
	}
}
