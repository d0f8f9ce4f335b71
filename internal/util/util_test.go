package util

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2021-03-04", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"04/15/1990", time.Date(1990, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"Jan 2, 2006", time.Date(2006, 1, 2, 0, 0, 0, 0, time.UTC)},
		{" 2021-03-04 10:30:00 ", time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if !ok {
			t.Fatalf("ParseDate(%q) failed", tt.in)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "Bob", "40", "13/45/2020"} {
		if IsDate(bad) {
			t.Fatalf("IsDate(%q) = true, want false", bad)
		}
	}
}

func TestParseDate_Extra(t *testing.T) {
	if IsDate("31.12.1999") {
		t.Fatal("expected no built-in layout to match")
	}
	if !IsDate("31.12.1999", "02.01.2006") {
		t.Fatal("expected extra layout to match")
	}
}

func TestRepairText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"Müller", "Müller"},
		{string([]byte{'M', 0xFC, 'l', 'l', 'e', 'r'}), "Müller"},
		{string([]byte{0x80, '5'}), "€5"},
	}
	for _, tt := range tests {
		if got := RepairText(tt.in); got != tt.want {
			t.Errorf("RepairText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := RepairBytes([]byte{'c', 'a', 'f', 0xE9}); got != "café" {
		t.Fatalf("RepairBytes = %q", got)
	}
}

func TestCleanLabel(t *testing.T) {
	if got := TrimBOM("\uFEFFName"); got != "Name" {
		t.Fatalf("TrimBOM = %q", got)
	}
	if got := TrimBOM("Na\uFEFFme"); got != "Na\uFEFFme" {
		t.Fatalf("TrimBOM touched an inner mark: %q", got)
	}
	if got := CleanLabel("\uFEFF First Name "); got != "First Name" {
		t.Fatalf("CleanLabel = %q", got)
	}
}

func TestTabError_Format(t *testing.T) {
	base := errors.New("boom")
	err := DatabaseConnectionError("sqlite", "x.db", base)
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped error to be reachable")
	}
	out := err.Format()
	for _, want := range []string{"Error: Cannot connect to database", "sqlite: x.db", "Possible causes:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("formatted error missing %q:\n%s", want, out)
		}
	}

	if !errors.Is(SourceNotFoundError("staff"), ErrSourceNotFound) {
		t.Fatal("expected ErrSourceNotFound")
	}
}
