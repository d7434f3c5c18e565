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

package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"
)

// DefaultGrace bounds the whole shutdown sequence.
const DefaultGrace = 5 * time.Second

// App starts every registered Component and shuts all of them down when a
// signal arrives or any one of them returns.
type App struct {
	comps []Component
	log   *slog.Logger
	grace time.Duration
}

func New(log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{log: log, grace: DefaultGrace}
}

func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// SetGrace overrides DefaultGrace. Non-positive values are ignored.
func (a *App) SetGrace(d time.Duration) {
	if d > 0 {
		a.grace = d
	}
}

// Run is RunContext stopped by SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext blocks until ctx is done or the first component returns.
//
// A cancelled ctx is a normal stop and returns nil. Otherwise the first
// component's result is returned after every component was asked to stop.
func (a *App) RunContext(ctx context.Context) error {
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	select {
	case <-ctx.Done():
		a.log.Info("app: stop requested")
		a.gracefulShutdown()
		return nil
	case err := <-errCh:
		a.log.Info("app: component exited", slog.Any("err", err))
		a.gracefulShutdown()
		return err
	}
}

// gracefulShutdown stops components in registration order within a.grace.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.grace)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			a.log.Error("app: shutdown failed", slog.Any("err", err))
		}
	}
}
