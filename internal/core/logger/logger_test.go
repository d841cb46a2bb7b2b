package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf))

	log.Debug("hidden message")
	log.Info("visible message", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("debug message logged at default level: %s", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "key=value") {
		t.Errorf("info message missing: %s", out)
	}
}

func TestNew_WithDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithDebug())

	log.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug message missing: %s", buf.String())
	}
}

func TestWith_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf)).With("worktree", "feat-a")

	log.Info("created")

	if !strings.Contains(buf.String(), "worktree=feat-a") {
		t.Errorf("context field missing: %s", buf.String())
	}
}

func TestNop_Discards(t *testing.T) {
	// Must not panic and must not write anywhere
	log := Nop()
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
}
