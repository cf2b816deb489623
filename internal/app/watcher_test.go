package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/five82/wallflower/internal/appearance"
)

type scriptedProber struct {
	mu    sync.Mutex
	modes []appearance.Mode
	calls int
}

func (p *scriptedProber) Probe() (appearance.Mode, string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if len(p.modes) == 0 {
		return appearance.Dark, "", false
	}
	m := p.modes[0]
	if len(p.modes) > 1 {
		p.modes = p.modes[1:]
	}
	return m, "script", true
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncHost(t *testing.T) {
	store := appearance.NewStore(appearance.Dark)
	store.Toggle() // user picked light

	prober := &scriptedProber{modes: []appearance.Mode{appearance.Dark, appearance.Light}}
	if syncHost(store, prober, quietLogger()) {
		t.Fatalf("unchanged host reported as change")
	}
	if got := store.Current(); got != appearance.Light {
		t.Fatalf("Current = %v, want manual light kept", got)
	}
	if !syncHost(store, prober, quietLogger()) {
		t.Fatalf("host change not reported")
	}
	if got := store.Current(); got != appearance.Light {
		t.Fatalf("Current = %v, want light", got)
	}
}

func TestSyncHost_NoAnswerKeepsMode(t *testing.T) {
	store := appearance.NewStore(appearance.Light)
	if syncHost(store, &scriptedProber{}, quietLogger()) {
		t.Fatalf("no answer reported as change")
	}
	if got := store.Current(); got != appearance.Light {
		t.Fatalf("Current = %v, want light", got)
	}
}

func TestStartHostWatcher_Disabled(t *testing.T) {
	prober := &scriptedProber{modes: []appearance.Mode{appearance.Light}}
	StartHostWatcher(context.Background(), appearance.NewStore(appearance.Dark), prober, 0, quietLogger())
	time.Sleep(20 * time.Millisecond)
	prober.mu.Lock()
	defer prober.mu.Unlock()
	if prober.calls != 0 {
		t.Fatalf("calls = %d, want 0 when disabled", prober.calls)
	}
}

func TestStartHostWatcher_AppliesHostChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := appearance.NewStore(appearance.Dark)
	changed := make(chan appearance.Mode, 1)
	store.Subscribe(func(m appearance.Mode) {
		select {
		case changed <- m:
		default:
		}
	})

	prober := &scriptedProber{modes: []appearance.Mode{appearance.Light}}
	StartHostWatcher(ctx, store, prober, 5*time.Millisecond, quietLogger())

	select {
	case m := <-changed:
		if m != appearance.Light {
			t.Fatalf("changed to %v, want light", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not apply host change")
	}
}
