package game

import (
	"fmt"
	"strings"
)

// Journal categories.
const (
	JournalUnit    = "unit"
	JournalTerrain = "terrain"
)

// JournalEntry is one recorded map mutation.
type JournalEntry struct {
	Seq      int
	Unit     UnitID
	HasUnit  bool   // false for terrain edits
	Category string // unit, terrain
	Key      string // spawn, defeat, move, reject, set, elevation
	From     Position
	To       Position
	Detail   string
}

// String formats the entry as a fixed-width log line.
//
//	[#0007] U12  unit     move             (3,4) -> (5,4)
func (e JournalEntry) String() string {
	who := "--"
	if e.HasUnit {
		who = fmt.Sprintf("U%d", e.Unit)
	}
	return fmt.Sprintf("[#%04d] %-4s %-8s %-16s %s",
		e.Seq, who, e.Category, e.Key, e.Detail)
}

// Journal collects map mutations in order. Unlike slog output it is
// unbounded and machine-readable, so tests and reports can query history.
type Journal struct {
	entries []JournalEntry
	rejects bool
}

// NewJournal creates a Journal. If withRejects is true, refused mutations are
// recorded as well (key "reject").
func NewJournal(withRejects bool) *Journal {
	return &Journal{rejects: withRejects}
}

func (j *Journal) add(e JournalEntry) {
	e.Seq = len(j.entries) + 1
	j.entries = append(j.entries, e)
}

func (j *Journal) addReject(e JournalEntry) {
	if !j.rejects {
		return
	}
	e.Key = "reject"
	j.add(e)
}

// Entries returns all recorded entries.
func (j *Journal) Entries() []JournalEntry {
	return j.entries
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int { return len(j.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (j *Journal) Filter(category, key string) []JournalEntry {
	var out []JournalEntry
	for _, e := range j.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns all entries for one unit.
func (j *Journal) FilterUnit(id UnitID) []JournalEntry {
	var out []JournalEntry
	for _, e := range j.entries {
		if e.HasUnit && e.Unit == id {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of entries matching category and key.
func (j *Journal) Count(category, key string) int {
	return len(j.Filter(category, key))
}

// Dump returns the whole journal as a multi-line string.
func (j *Journal) Dump() string {
	var sb strings.Builder
	for _, e := range j.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
