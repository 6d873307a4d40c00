package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestPhases(t *testing.T) {
	w := New()

	if strings.Contains(w.View(80, 24), "mental arithmetic") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != bannerAt {
		t.Errorf("elapsed = %v, want %v", w.elapsed, bannerAt)
	}
	view := w.View(80, 24)
	if !strings.Contains(view, "mental arithmetic") {
		t.Error("tagline should be visible after the banner phase")
	}
	if strings.Contains(view, "press any key") {
		t.Error("hint should not be visible yet")
	}

	sendTicks(w, 10)
	if !strings.Contains(w.View(80, 24), "press any key") {
		t.Error("hint should be visible")
	}
}

func TestElapsedCapped(t *testing.T) {
	w := New()
	if cmd := sendTicks(w, 60); cmd == nil {
		t.Error("ticks should keep the animation running")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
}

func TestKeypressEmitsDoneOnce(t *testing.T) {
	w := New()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should finish the splash")
	}
	if _, ok := cmd().(DoneMsg); !ok {
		t.Fatalf("expected DoneMsg, got %T", cmd())
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'a'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("ticks should stop after the splash is done")
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(30), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
}

func TestTitleEmpty(t *testing.T) {
	if New().Title() != "" {
		t.Error("welcome has no title")
	}
}
