package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	out := buf.String()
	if !strings.Contains(out, "v1.2.3") {
		t.Errorf("Expected version in banner, got:\n%s", out)
	}
	if strings.Count(out, "\n") < 7 {
		t.Errorf("Expected multi-line banner, got:\n%s", out)
	}
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Title\n\n- flu\n")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "flu") {
		t.Errorf("Expected rendered output to keep content, got %q", out)
	}
}
