package view

import (
	"math"
	"sort"
	"time"

	"github.com/imgajeed76/tabview/internal/util"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortState is the active sort column and direction. The zero value means
// "not sorted".
type SortState struct {
	Key       string
	Ascending bool
}

// Active reports whether a sort column is selected.
func (s SortState) Active() bool { return s.Key != "" }

// Toggle returns the state after a click on key's header: a new column
// starts descending, the same column flips direction.
func (s SortState) Toggle(key string) SortState {
	if s.Key != key {
		return SortState{Key: key, Ascending: false}
	}
	s.Ascending = !s.Ascending
	return s
}

// SortOption configures Sort.
type SortOption func(*sortConfig)

type sortConfig struct {
	collator *collate.Collator
	layouts  []string
}

// WithCollator sets the collator used for text columns.
func WithCollator(c *collate.Collator) SortOption {
	return func(cfg *sortConfig) { cfg.collator = c }
}

// WithLocale compares text columns using the collation rules of tag.
func WithLocale(tag language.Tag) SortOption {
	return WithCollator(collate.New(tag))
}

// WithDateLayouts adds layouts for recognizing chronological columns.
func WithDateLayouts(layouts ...string) SortOption {
	return func(cfg *sortConfig) { cfg.layouts = append(cfg.layouts, layouts...) }
}

func newSortConfig(opts []SortOption) sortConfig {
	var cfg sortConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.collator == nil {
		cfg.collator = collate.New(language.English)
	}
	return cfg
}

// Sort returns records ordered by key. The comparison kind comes from the
// first record's value (see Classify). The sort is stable in both
// directions and never modifies records.
func Sort(records []Record, key string, ascending bool, opts ...SortOption) []Record {
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sortIndices(records, idx, key, ascending, newSortConfig(opts))

	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}

// sortKey is a value pre-converted for one comparison kind. Values that
// do not convert (ok == false) order before all that do.
type sortKey struct {
	ok  bool
	num float64
	at  time.Time
	str string
}

type keyedIndex struct {
	idx int
	key sortKey
}

// sortIndices stably reorders idx, a list of positions into records.
func sortIndices(records []Record, idx []int, key string, ascending bool, cfg sortConfig) {
	if len(idx) < 2 {
		return
	}
	kind := classify(records[idx[0]].Value(key), cfg.layouts)

	keyed := make([]keyedIndex, len(idx))
	for i, j := range idx {
		keyed[i] = keyedIndex{idx: j, key: makeSortKey(kind, records[j].Value(key), cfg.layouts)}
	}

	compare := func(a, b sortKey) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return -1
		case !b.ok:
			return 1
		}
		switch kind {
		case Numeric:
			return compareFloat(a.num, b.num)
		case Chronological:
			return a.at.Compare(b.at)
		default:
			return cfg.collator.CompareString(a.str, b.str)
		}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		c := compare(keyed[i].key, keyed[j].key)
		if ascending {
			return c < 0
		}
		return c > 0
	})

	for i, k := range keyed {
		idx[i] = k.idx
	}
}

func makeSortKey(kind Kind, v any, layouts []string) sortKey {
	switch kind {
	case Numeric:
		// NaN is unordered against every number; treat it as unconvertible
		f, ok := toFloat(v)
		return sortKey{ok: ok && !math.IsNaN(f), num: f}
	case Chronological:
		s, ok := v.(string)
		if !ok {
			return sortKey{}
		}
		t, ok := util.ParseDate(s, layouts...)
		return sortKey{ok: ok, at: t}
	default:
		return sortKey{ok: true, str: FormatValue(v)}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
