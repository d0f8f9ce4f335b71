package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/imgajeed76/tabview/internal/util"
	"github.com/imgajeed76/tabview/internal/view"
)

func TestLoadJSON(t *testing.T) {
	in := `[
		{"firstName": "Ann", "age": 25, "score": 2.5, "startDate": "2021-03-04", "tags": ["a", "b"]},
		{"firstName": "Bob", "age": 40, "active": true, "note": null}
	]`
	tbl, err := LoadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	wantCols := []string{"firstName", "age", "score", "startDate", "tags", "active", "note"}
	var gotCols []string
	for _, c := range tbl.Columns {
		if c.Label != c.Key {
			t.Fatalf("expected label == key for JSON columns, got %+v", c)
		}
		gotCols = append(gotCols, c.Key)
	}
	if diff := cmp.Diff(wantCols, gotCols); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}

	if len(tbl.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(tbl.Records))
	}
	ann := tbl.Records[0]
	if diff := cmp.Diff([]string{"firstName", "age", "score", "startDate", "tags"}, ann.Keys()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if ann.Value("age") != int64(25) || ann.Value("score") != 2.5 || ann.Value("tags") != `["a","b"]` {
		t.Fatalf("unexpected values: %s", ann)
	}
	if view.Classify(ann.Value("startDate")) != view.Chronological {
		t.Fatal("expected startDate to classify as chronological")
	}
	if tbl.Records[1].Value("active") != true {
		t.Fatalf("expected bool, got %#v", tbl.Records[1].Value("active"))
	}
}

func TestLoadJSON_Invalid(t *testing.T) {
	for _, in := range []string{`{"a": 1}`, `[1, 2]`, `[{"a": 1}`, ``} {
		if _, err := LoadJSON(strings.NewReader(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTable_WithLabels(t *testing.T) {
	tbl, err := LoadJSON(strings.NewReader(`[{"FirstName": "Ann", "age": 25}]`))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if err := tbl.WithLabels([]string{"FirstName", "Age"}); err != nil {
		t.Fatalf("WithLabels: %v", err)
	}
	want := []view.Column{{Label: "FirstName", Key: "FirstName"}, {Label: "Age", Key: "age"}}
	if diff := cmp.Diff(want, tbl.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := tbl.Records[0].Value(tbl.Columns[0].Key); got != "Ann" {
		t.Fatalf("relabeled column lost its values, got %#v", got)
	}
}

func TestTable_WithLabelsUnknown(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader("First Name,Age\nAnn,25\n"), CSVOptions{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if err := tbl.WithLabels([]string{"Age", "Height"}); !errors.Is(err, view.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	if err := tbl.WithLabels([]string{"age", "AGE"}); !errors.Is(err, view.ErrKeyCollision) {
		t.Fatalf("expected ErrKeyCollision, got %v", err)
	}
	if diff := cmp.Diff([]string{"First Name", "Age"}, view.Labels(tbl.Columns)); diff != "" {
		t.Fatalf("failed relabel changed columns (-want +got):\n%s", diff)
	}
}

func TestLoadCSV(t *testing.T) {
	in := "First Name,Last Name,Age,Salary\nAnn,Lee,25,1000.50\nBob,,40\n"
	tbl, err := LoadCSV(strings.NewReader(in), CSVOptions{InferNumbers: true})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	want := []view.Column{
		{Label: "First Name", Key: "firstName"},
		{Label: "Last Name", Key: "lastName"},
		{Label: "Age", Key: "age"},
		{Label: "Salary", Key: "salary"},
	}
	if diff := cmp.Diff(want, tbl.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := tbl.Records[0].String(); got != "Ann,Lee,25,1000.5" {
		t.Fatalf("record 0 = %q", got)
	}
	// short rows are padded with empty cells
	if got := tbl.Records[1].String(); got != "Bob,,40," {
		t.Fatalf("record 1 = %q", got)
	}
	if tbl.Records[1].Value("age") != int64(40) {
		t.Fatalf("expected inferred int, got %#v", tbl.Records[1].Value("age"))
	}
}

func TestLoadCSV_ByteOrderMark(t *testing.T) {
	in := "\uFEFFName,City\nAnn,K\xf6ln\n"
	tbl, err := LoadCSV(strings.NewReader(in), CSVOptions{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	want := []view.Column{{Label: "Name", Key: "name"}, {Label: "City", Key: "city"}}
	if diff := cmp.Diff(want, tbl.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := tbl.Records[0].Value("city"); got != "Köln" {
		t.Fatalf("city = %#v", got)
	}
}

func TestLoadCSV_NoInference(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader("Age\n40\n"), CSVOptions{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Records[0].Value("age") != "40" {
		t.Fatalf("expected raw string, got %#v", tbl.Records[0].Value("age"))
	}
}

func TestLoadCSV_HeaderCollision(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("First Name,first name\na,b\n"), CSVOptions{})
	if !errors.Is(err, view.ErrKeyCollision) {
		t.Fatalf("expected ErrKeyCollision, got %v", err)
	}
}

func TestLoadCSV_Empty(t *testing.T) {
	if _, err := LoadCSV(strings.NewReader(""), CSVOptions{}); !errors.Is(err, util.ErrNoColumns) {
		t.Fatalf("expected ErrNoColumns, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "people.tsv")
	if err := os.WriteFile(tsv, []byte("Name\tAge\nAnn\t25\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadFile(tsv, FormatAuto)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(tbl.Records) != 1 || tbl.Records[0].Value("age") != int64(25) {
		t.Fatalf("unexpected table %+v", tbl.Records)
	}

	if _, err := LoadFile(filepath.Join(dir, "people.xlsx"), FormatAuto); !errors.Is(err, util.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestQuerySQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE employees (first_name TEXT, age INTEGER, salary REAL, start_date TEXT, notes BLOB);
		INSERT INTO employees VALUES ('Ann', 25, 1000.5, '2021-03-04', NULL);
		INSERT INTO employees VALUES ('Bob', 40, 2000, '2019-01-02', x'6869');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	tbl, err := Query(context.Background(), "sqlite", path, "SELECT * FROM employees ORDER BY first_name")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if diff := cmp.Diff([]string{"first_name", "age", "salary", "start_date", "notes"}, view.Labels(tbl.Columns)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(tbl.Records))
	}
	if got := tbl.Records[1].String(); got != "Bob,40,2000,2019-01-02,hi" {
		t.Fatalf("record 1 = %q", got)
	}
	if view.Classify(tbl.Records[0].Value("age")) != view.Numeric {
		t.Fatalf("expected numeric age, got %#v", tbl.Records[0].Value("age"))
	}
}

func TestQuery_UnsupportedDriver(t *testing.T) {
	if _, err := Query(context.Background(), "mysql", "x", "SELECT 1"); !errors.Is(err, util.ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}

func TestQueryPostgres(t *testing.T) {
	url := os.Getenv("TABVIEW_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TABVIEW_TEST_POSTGRES_URL not set, skipping")
	}
	tbl, err := QueryPostgres(context.Background(), url,
		"SELECT 'Ann'::text AS name, 25 AS age, 1.5::numeric AS score, now() AS seen")
	if err != nil {
		t.Fatalf("QueryPostgres: %v", err)
	}
	r := tbl.Records[0]
	if r.Value("age") != int64(25) || r.Value("score") != 1.5 {
		t.Fatalf("unexpected values %s", r)
	}
	if view.Classify(r.Value("seen")) != view.Chronological {
		t.Fatalf("expected timestamp to classify as chronological, got %#v", r.Value("seen"))
	}
}
