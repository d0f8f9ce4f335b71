package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	path := writeConfig(t, `
[view]
page_size = 25
locale = "de"
date_layouts = ["02.01.2006"]

[source.staff]
driver = "sqlite"
dsn = "staff.db"
query = "SELECT * FROM employees"
columns = ["First Name", "Last Name"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.View.PageSize != 25 {
		t.Fatalf("page_size = %d, want 25", cfg.View.PageSize)
	}
	if diff := cmp.Diff([]int{10, 25, 50, 100}, cfg.View.PageSizes); diff != "" {
		t.Fatalf("page_sizes should keep defaults (-want +got):\n%s", diff)
	}
	tag, err := cfg.Language()
	if err != nil || tag.String() != "de" {
		t.Fatalf("Language() = %v, %v", tag, err)
	}
	src, ok := cfg.GetSource("staff")
	if !ok || src.Driver != "sqlite" || len(src.Columns) != 2 {
		t.Fatalf("unexpected source %+v (found=%v)", src, ok)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative page size": "[view]\npage_size = -3\n",
		"zero in page sizes": "[view]\npage_sizes = [10, 0]\n",
		"bad driver":         "[source.x]\ndriver = \"mysql\"\ndsn = \"x\"\n",
		"missing dsn":        "[source.x]\ndriver = \"sqlite\"\n",
		"bad locale":         "[view]\nlocale = \"not a tag!\"\n",
		"bad toml":           "[view\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.View.PageSize = 50
	cfg.SetSource("pg", SourceConfig{Driver: "postgres", DSN: "postgres://localhost/db", Query: "SELECT 1"})
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStepPageSize(t *testing.T) {
	v := DefaultConfig().View
	tests := []struct {
		current, step, want int
	}{
		{10, 1, 25},
		{100, 1, 10},
		{10, -1, 100},
		{50, -1, 25},
		{7, 1, 10},
	}
	for _, tt := range tests {
		if got := v.StepPageSize(tt.current, tt.step); got != tt.want {
			t.Errorf("StepPageSize(%d, %d) = %d, want %d", tt.current, tt.step, got, tt.want)
		}
	}
}
