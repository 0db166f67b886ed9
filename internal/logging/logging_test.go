package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "warn", "text")
	if l.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %v", l.GetLevel())
	}
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if NewWithOutput(&buf, "bogus", "text").GetLevel() != logrus.InfoLevel {
		t.Fatal("unknown level should fall back to info")
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithOutput(&buf, "info", "json").WithField("feed", "sbs").Info("fetched")
	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"feed":"sbs"`) {
		t.Fatalf("expected JSON line, got %q", out)
	}
}
