package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuf) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]LogMode{"dev": ModeDev, "ModeProd": ModeProd, " SILENCE ": ModeSilence} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("loud"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestAsyncHandlerDrainsOnClose(t *testing.T) {
	out := &lockedBuf{}
	ah := NewAsyncHandler(buildHandlerTo(ModeProd, out), 64)
	log := slog.New(ah).With("svc", "tosslab")
	for i := 0; i < 10; i++ {
		log.Info("tick", "i", i)
	}
	ah.Close()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines)+int(ah.Dropped()) != 10 {
		t.Fatalf("written %d + dropped %d != 10", len(lines), ah.Dropped())
	}
	if !strings.Contains(lines[0], `"svc":"tosslab"`) {
		t.Fatalf("attrs lost: %s", lines[0])
	}
}

func TestAsyncHandlerDropsAfterClose(t *testing.T) {
	ah := NewAsyncHandler(slog.DiscardHandler, 1)
	ah.Close()
	ah.Close()
	_ = ah.Handle(context.Background(), slog.Record{})
	if ah.Dropped() != 1 {
		t.Fatalf("want 1 drop, got %d", ah.Dropped())
	}
}

func TestSilenceIsDisabled(t *testing.T) {
	log := NewDefaultLogger(ModeSilence)
	if log.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("silence mode should not be enabled")
	}
}
