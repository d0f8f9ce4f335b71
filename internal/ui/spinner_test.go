package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/imgajeed76/tabview/internal/ui/styles"
)

func TestSpinner_Static(t *testing.T) {
	styles.SetNoColor(true)
	defer styles.SetNoColor(false)

	var buf bytes.Buffer
	s := NewSpinner("Running query")
	s.out = &buf
	s.animate = false

	s.Start()
	s.Success("Loaded 3 rows")

	want := "Running query...\n+ Loaded 3 rows\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestSpinner_AnimatedClearsLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("Connecting")
	s.out = &buf
	s.animate = true

	s.Start()
	s.Stop()

	if !strings.HasSuffix(buf.String(), "\r\033[K") {
		t.Fatalf("spinner did not clear its line: %q", buf.String())
	}
}
