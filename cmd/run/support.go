package main

import (
	"context"
	"crypto/rand"
	"flag"
	"math"
	"math/big"
	"os"

	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/dataset"
	"github.com/zintix-labs/tosslab/dto"
	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/export"
	"github.com/zintix-labs/tosslab/match"
	"github.com/zintix-labs/tosslab/server/logger"
	"github.com/zintix-labs/tosslab/stats"
)

var cfg *config = new(config)

type config struct {
	seed      int64
	genPath   string
	dataPath  string
	dumpPath  string
	format    string
	year      string
	team      string
	out       string
	logMode   string
	showpb    bool
	pprofmode string
}

func bindVar() {
	flag.Int64Var(&cfg.seed, "seed", dataset.DefaultSeed, "generator seed, < 1 picks a random one")
	flag.StringVar(&cfg.genPath, "config", "", "generator config yaml (overrides defaults)")
	flag.StringVar(&cfg.dataPath, "data", "", "record file (.yaml|.yml|.json); skips the generator")
	flag.StringVar(&cfg.dumpPath, "dump", "", "write the records used to this file (.yaml|.json)")
	flag.StringVar(&cfg.format, "format", "all", "filter: Test|ODI|T20|all")
	flag.StringVar(&cfg.year, "year", "all", "filter: a year or all")
	flag.StringVar(&cfg.team, "team", "all", "filter: a team or all")
	flag.StringVar(&cfg.out, "out", "table", "output: table|json|yaml|md|html|xlsx")
	flag.StringVar(&cfg.logMode, "log", "silence", "log mode: dev|prod|silence")
	flag.BoolVar(&cfg.showpb, "pb", false, "show a progress bar while generating")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()
}

// execute loads or generates the records, filters them and prints the report.
func execute() error {
	mode, err := logger.ParseMode(cfg.logMode)
	if err != nil {
		return err
	}
	log := logger.NewDefaultLogger(mode)

	recs, err := loadRecords()
	if err != nil {
		return err
	}
	f, err := dto.FilterQuery{Format: cfg.format, Year: cfg.year, Team: cfg.team}.Parse()
	if err != nil {
		return err
	}
	lab, err := tosslab.NewLab(recs, log)
	if err != nil {
		return err
	}
	defer lab.Close()

	// dump the normalised copies the report actually runs on
	if cfg.dumpPath != "" {
		if err := dataset.SaveFile(cfg.dumpPath, lab.Records()); err != nil {
			return err
		}
		log.Info("records written", "path", cfg.dumpPath, "records", len(recs))
	}

	rep, err := lab.Report(context.Background(), f)
	if err != nil {
		return err
	}

	switch cfg.out {
	case "table":
		printReport(os.Stdout, f, rep)
		return nil
	case "md":
		_, err = os.Stdout.Write(export.Markdown(f, rep))
		return err
	case "html":
		_, err = os.Stdout.Write(export.HTML(f, rep))
		return err
	case "xlsx":
		return export.WriteXLSX(os.Stdout, f, rep)
	}
	r, err := stats.RenderByName(cfg.out)
	if err != nil {
		return err
	}
	return r.Write(os.Stdout, rep)
}

func loadRecords() ([]match.Record, error) {
	if cfg.dataPath != "" {
		return dataset.LoadFile(cfg.dataPath)
	}
	gen := dataset.DefaultGenConfig()
	if cfg.genPath != "" {
		raw, err := os.ReadFile(cfg.genPath)
		if err != nil {
			return nil, errs.WrapWithExtra(err, "read generator config", "path="+cfg.genPath)
		}
		if gen, err = dataset.DecodeGenConfig(raw); err != nil {
			return nil, err
		}
	}
	if isFlagSet("seed") || cfg.genPath == "" {
		gen.Seed = cfg.seed
	}
	if gen.Seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			return nil, errs.Wrap(err, "random seed")
		}
		gen.Seed = seed.Int64()
	}
	gen.ShowProgress = cfg.showpb
	return dataset.Generate(gen)
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
