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

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/zintix-labs/tosslab"
	"github.com/zintix-labs/tosslab/dataset"
	"github.com/zintix-labs/tosslab/match"
	"github.com/zintix-labs/tosslab/server"
	"github.com/zintix-labs/tosslab/server/logger"
	"github.com/zintix-labs/tosslab/server/netsvr"
	"github.com/zintix-labs/tosslab/server/svrcfg"
)

// Serves the toss report over HTTP, on the generated demo dataset unless
// -data points at a record file.
//
// Flag defaults come from TOSSLAB_* variables, which a .env file in the
// working directory may set. Variables already in the environment win over
// the file, and flags win over both.
func main() {
	sCfg, closeLog, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = server.Run(sCfg)
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

type config struct {
	LogMode  string
	Addr     string
	DataPath string
	Seed     int64
	Timeout  time.Duration
	Inflight int64
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, func(), error) {
	dotenv := godotenv.Load() == nil

	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", envOr("TOSSLAB_LOG_MODE", "dev"), "log mode: dev|prod|silence")
	flag.StringVar(&cfg.Addr, "addr", envOr("TOSSLAB_ADDR", netsvr.DefaultAddr), "listen address")
	flag.StringVar(&cfg.DataPath, "data", envOr("TOSSLAB_DATA", ""), "record file (.yaml|.yml|.json); empty serves the demo dataset")
	flag.Int64Var(&cfg.Seed, "seed", dataset.DefaultSeed, "demo dataset seed")
	flag.DurationVar(&cfg.Timeout, "timeout", svrcfg.DefaultTimeout, "per-request report budget")
	flag.Int64Var(&cfg.Inflight, "inflight", envInt("TOSSLAB_INFLIGHT", svrcfg.DefaultInflight), "max concurrent report builds")
	flag.Parse()

	mode, err := logger.ParseMode(cfg.LogMode)
	if err != nil {
		return nil, func() {}, err
	}
	log, ah := logger.NewAsync(4096, mode)

	recs, err := cfg.records()
	if err != nil {
		ah.Close()
		return nil, func() {}, err
	}
	lab, err := tosslab.NewLab(recs, log)
	if err != nil {
		ah.Close()
		return nil, func() {}, err
	}
	log.Info("dataset ready",
		"records", len(recs),
		"source", cfg.source(),
		"fingerprint", lab.Meta().Fingerprint,
		"dotenv", dotenv,
	)

	sCfg := &svrcfg.SvrCfg{
		Log:         log,
		Lab:         lab,
		Addr:        cfg.Addr,
		Timeout:     cfg.Timeout,
		MaxInflight: cfg.Inflight,
	}
	return sCfg, ah.Close, nil
}

func (cfg *config) records() ([]match.Record, error) {
	if cfg.DataPath != "" {
		return dataset.LoadFile(cfg.DataPath)
	}
	gen := dataset.DefaultGenConfig()
	gen.Seed = cfg.Seed
	return dataset.Generate(gen)
}

func (cfg *config) source() string {
	if cfg.DataPath != "" {
		return cfg.DataPath
	}
	return fmt.Sprintf("generated(seed=%d)", cfg.Seed)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int64) int64 {
	n, err := strconv.ParseInt(envOr(key, ""), 10, 64)
	if err != nil {
		return def
	}
	return n
}
