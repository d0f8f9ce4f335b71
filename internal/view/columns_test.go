package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"First Name", "firstName"},
		{"age", "age"},
		{"Date of Birth", "dateOfBirth"},
		{"  ZIP   code ", "zipCode"},
		{"STREET", "street"},
		{"start\tDATE", "startDate"},
		{"", ""},
		{"   ", ""},
		{"état civil", "étatCivil"},
	}
	for _, tt := range tests {
		if got := DeriveKey(tt.label); got != tt.want {
			t.Errorf("DeriveKey(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	if DeriveKey("Start Date") != DeriveKey("Start Date") {
		t.Fatal("expected identical keys for identical labels")
	}
}

func TestNewColumns(t *testing.T) {
	cols, err := NewColumns("First Name", "Last Name", "Age")
	if err != nil {
		t.Fatalf("NewColumns: %v", err)
	}
	want := []Column{
		{Label: "First Name", Key: "firstName"},
		{Label: "Last Name", Key: "lastName"},
		{Label: "Age", Key: "age"},
	}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"First Name", "Last Name", "Age"}, Labels(cols)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestNewColumns_Collision(t *testing.T) {
	_, err := NewColumns("First Name", "first  name")
	if !errors.Is(err, ErrKeyCollision) {
		t.Fatalf("expected ErrKeyCollision, got %v", err)
	}
}

func TestNewColumns_EmptyKey(t *testing.T) {
	_, err := NewColumns("Name", " ")
	if !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestFindColumn(t *testing.T) {
	cols := []Column{
		{Label: "First Name", Key: "firstName"},
		{Label: "FirstName", Key: "FirstName"},
		{Label: "Age", Key: "age"},
	}
	tests := []struct {
		in      string
		wantKey string
		wantOK  bool
	}{
		{"FirstName", "FirstName", true},
		{"firstName", "firstName", true},
		{"first name", "firstName", true},
		{" AGE ", "age", true},
		{"age  ", "age", true},
		{"height", "", false},
	}
	for _, tt := range tests {
		got, ok := FindColumn(cols, tt.in)
		if ok != tt.wantOK || got.Key != tt.wantKey {
			t.Errorf("FindColumn(%q) = %+v, %v; want key %q, %v", tt.in, got, ok, tt.wantKey, tt.wantOK)
		}
	}
}
