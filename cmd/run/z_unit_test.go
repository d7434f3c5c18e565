package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/dataset"
)

func TestPrintReport(t *testing.T) {
	recs, err := dataset.Generate(dataset.DefaultGenConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var buf bytes.Buffer
	printReport(&buf, tosslab.Filter{}, tosslab.Build(recs))
	out := buf.String()
	for _, want := range []string{"[FILTER:all] [MATCHES:120]", "Toss Impact", "Chi-Square Test", "By Format", "By Decision", "By Year", "By Team", "By Venue", "10 years: mean", "2024", "T20"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q missing from output:\n%s", want, out)
		}
	}
}

func TestExecuteDumpsRecords(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	path := filepath.Join(t.TempDir(), "records.yaml")
	cfg = &config{
		seed:     dataset.DefaultSeed,
		dumpPath: path,
		format:   "all",
		year:     "all",
		team:     "all",
		out:      "json",
		logMode:  "silence",
	}
	if err := execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	recs, err := dataset.LoadFile(path)
	if err != nil {
		t.Fatalf("reload dump: %v", err)
	}
	if len(recs) != 120 {
		t.Fatalf("want 120 dumped records, got %d", len(recs))
	}
}
