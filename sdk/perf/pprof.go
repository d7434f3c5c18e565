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

// Package perf wraps a CLI run with an optional pprof capture.
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/tosslab/errs"
)

// DefaultDir is where profiles land unless the caller says otherwise.
const DefaultDir = "build/profiling"

// Modes lists the accepted values for RunPProf's mode.
var Modes = []string{"", "cpu", "heap", "allocs"}

// RunPProf runs exe under the requested profile and writes <mode>.pprof
// into dir. An empty mode just runs exe.
//
// exe's error wins over a profiling error.
func RunPProf(exe func() error, mode string, dir string) error {
	if dir == "" {
		dir = DefaultDir
	}
	switch mode {
	case "":
		return exe()
	case "cpu":
		return PProfCPU(exe, dir)
	case "heap":
		return PProfHeap(exe, dir)
	case "allocs":
		return PProfAllocs(exe, dir)
	default:
		return errs.Warnf("unknown pprof mode %q (want cpu|heap|allocs)", mode)
	}
}

// PProfCPU samples the CPU while exe runs. The result also serves as a PGO
// profile.
func PProfCPU(exe func() error, dir string) error {
	f, err := create(dir, "cpu.pprof")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "perf: start cpu profile")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// PProfHeap writes one in-use heap snapshot after exe returns. A GC runs
// first so the snapshot shows live objects only.
func PProfHeap(exe func() error, dir string) error {
	runErr := exe()
	runtime.GC()
	f, err := create(dir, "heap.pprof")
	if err != nil {
		return firstErr(runErr, err)
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return firstErr(runErr, errs.Wrap(err, "perf: write heap profile"))
	}
	return runErr
}

// PProfAllocs writes the cumulative allocation profile after exe returns.
// Read it with -sample_index=alloc_space or alloc_objects.
func PProfAllocs(exe func() error, dir string) error {
	runErr := exe()
	f, err := create(dir, "allocs.pprof")
	if err != nil {
		return firstErr(runErr, err)
	}
	defer f.Close()
	if prof := pprof.Lookup("allocs"); prof != nil {
		if err := prof.WriteTo(f, 0); err != nil {
			return firstErr(runErr, errs.Wrap(err, "perf: write allocs profile"))
		}
	}
	return runErr
}

func create(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.WrapWithExtra(err, "perf: mkdir failed", "dir="+dir)
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, errs.WrapWithExtra(err, "perf: create failed", "file="+name)
	}
	return f, nil
}

func firstErr(a, b error) error {
	if a != nil {
		return a
	}
	return b
}
