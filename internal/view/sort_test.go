package view

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func TestSort_NumericAscendingStable(t *testing.T) {
	got := Sort(roundTripRecords(), "age", true)
	if diff := cmp.Diff([]string{"Ann", "Cy", "Bob"}, names(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_NumericDescendingKeepsTies(t *testing.T) {
	got := Sort(roundTripRecords(), "age", false)
	if diff := cmp.Diff([]string{"Bob", "Ann", "Cy"}, names(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

// Numeric columns must sort by the requested key. An earlier rendition of
// this table always compared the "age" field regardless of the column.
func TestSort_NumericUsesRequestedKey(t *testing.T) {
	recs := []Record{
		NewRecord(Field{Key: "name", Value: "a"}, Field{Key: "age", Value: 1}, Field{Key: "salary", Value: 300}),
		NewRecord(Field{Key: "name", Value: "b"}, Field{Key: "age", Value: 2}, Field{Key: "salary", Value: 100}),
		NewRecord(Field{Key: "name", Value: "c"}, Field{Key: "age", Value: 3}, Field{Key: "salary", Value: 200}),
	}
	got := Sort(recs, "salary", true)
	if diff := cmp.Diff([]string{"b", "c", "a"}, names(got)); diff != "" {
		t.Fatalf("expected salary order (-want +got):\n%s", diff)
	}
}

func TestSort_Text(t *testing.T) {
	recs := []Record{person("cy", 1), person("Bob", 2), person("ann", 3), person("Émile", 4)}
	got := Sort(recs, "name", true)
	if diff := cmp.Diff([]string{"ann", "Bob", "cy", "Émile"}, names(got)); diff != "" {
		t.Fatalf("ascending mismatch (-want +got):\n%s", diff)
	}
	got = Sort(recs, "name", false)
	if diff := cmp.Diff([]string{"Émile", "cy", "Bob", "ann"}, names(got)); diff != "" {
		t.Fatalf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_NaNOrdersWithUnconvertible(t *testing.T) {
	mk := func(name string, v float64) Record {
		return NewRecord(Field{Key: "name", Value: name}, Field{Key: "v", Value: v})
	}
	recs := []Record{mk("a", 3), mk("nan", math.NaN()), mk("b", 1), mk("c", 2)}

	got := Sort(recs, "v", true)
	if diff := cmp.Diff([]string{"nan", "b", "c", "a"}, names(got)); diff != "" {
		t.Fatalf("ascending mismatch (-want +got):\n%s", diff)
	}
	got = Sort(recs, "v", false)
	if diff := cmp.Diff([]string{"a", "c", "b", "nan"}, names(got)); diff != "" {
		t.Fatalf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_WithCollator(t *testing.T) {
	recs := []Record{person("item10", 1), person("item2", 2), person("item1", 3)}

	got := Sort(recs, "name", true)
	if diff := cmp.Diff([]string{"item1", "item10", "item2"}, names(got)); diff != "" {
		t.Fatalf("default collation mismatch (-want +got):\n%s", diff)
	}
	got = Sort(recs, "name", true, WithCollator(collate.New(language.English, collate.Numeric)))
	if diff := cmp.Diff([]string{"item1", "item2", "item10"}, names(got)); diff != "" {
		t.Fatalf("numeric collation mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_TextLocale(t *testing.T) {
	recs := []Record{person("zebra", 1), person("ähnlich", 2), person("apfel", 3)}
	got := Sort(recs, "name", true, WithLocale(language.German))
	if diff := cmp.Diff([]string{"ähnlich", "apfel", "zebra"}, names(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_Chronological(t *testing.T) {
	mk := func(name, date string) Record {
		return NewRecord(Field{Key: "name", Value: name}, Field{Key: "start", Value: date})
	}
	recs := []Record{
		mk("b", "2020-05-01"),
		mk("a", "2019-12-31"),
		mk("c", "2021-01-15"),
	}
	got := Sort(recs, "start", true)
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(got)); diff != "" {
		t.Fatalf("ascending mismatch (-want +got):\n%s", diff)
	}
	// Lexical order would put "04/..." before "12/..." regardless of year.
	recs = []Record{mk("late", "04/01/2022"), mk("early", "12/01/2019")}
	got = Sort(recs, "start", true)
	if diff := cmp.Diff([]string{"early", "late"}, names(got)); diff != "" {
		t.Fatalf("expected chronological, not lexical, order (-want +got):\n%s", diff)
	}
}

// The comparison kind comes from the first record only. A text value in a
// column classified numeric orders before every number.
func TestSort_FirstRecordClassification(t *testing.T) {
	recs := []Record{
		NewRecord(Field{Key: "name", Value: "a"}, Field{Key: "v", Value: 10}),
		NewRecord(Field{Key: "name", Value: "b"}, Field{Key: "v", Value: "n/a"}),
		NewRecord(Field{Key: "name", Value: "c"}, Field{Key: "v", Value: 2}),
	}
	got := Sort(recs, "v", true)
	if diff := cmp.Diff([]string{"b", "c", "a"}, names(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	// With a string first, the same column compares as text.
	recs[0], recs[1] = recs[1], recs[0]
	got = Sort(recs, "v", true)
	if diff := cmp.Diff([]string{"a", "c", "b"}, names(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	recs := roundTripRecords()
	_ = Sort(recs, "age", true)
	if diff := cmp.Diff([]string{"Bob", "Ann", "Cy"}, names(recs)); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestSort_Stability(t *testing.T) {
	var recs []Record
	for i, n := range []string{"p", "q", "r", "s", "t", "u", "v", "w"} {
		recs = append(recs, person(n, i%2))
	}
	got := Sort(recs, "age", true)
	if diff := cmp.Diff([]string{"p", "r", "t", "v", "q", "s", "u", "w"}, names(got)); diff != "" {
		t.Fatalf("ascending not stable (-want +got):\n%s", diff)
	}
	got = Sort(recs, "age", false)
	if diff := cmp.Diff([]string{"q", "s", "u", "w", "p", "r", "t", "v"}, names(got)); diff != "" {
		t.Fatalf("descending not stable (-want +got):\n%s", diff)
	}
}

func TestSort_Empty(t *testing.T) {
	if got := Sort(nil, "age", true); len(got) != 0 {
		t.Fatalf("expected empty result, got %d records", len(got))
	}
}

func TestSortState_Toggle(t *testing.T) {
	var s SortState
	if s.Active() {
		t.Fatal("zero state should be inactive")
	}
	s = s.Toggle("age")
	if s != (SortState{Key: "age", Ascending: false}) {
		t.Fatalf("first click: got %+v", s)
	}
	s = s.Toggle("age")
	if s != (SortState{Key: "age", Ascending: true}) {
		t.Fatalf("second click: got %+v", s)
	}
	s = s.Toggle("name")
	if s != (SortState{Key: "name", Ascending: false}) {
		t.Fatalf("new column: got %+v", s)
	}
}
