// Package view computes the read-only projections the UI renders
// over a snapshot of tips: urgency buckets for the dashboard and a
// sorted, searchable table for the manage screen. Nothing here is
// cached; every call recomputes over the snapshot it is handed, and
// re-querying the repository stays the caller's job.
package view

import (
	"sort"
	"strings"

	"github.com/tattlestoolie/tattlestoolie/internal/repository"
)

// SortKey names a sortable table column.
type SortKey string

const (
	SortByTipName      SortKey = "tip_name"
	SortByIncidentType SortKey = "incident_type"
	SortByLocation     SortKey = "location"
	SortByUrgency      SortKey = "urgency"
	SortByStatus       SortKey = "status"
)

// unknownRank places unrecognized urgency/status values after every
// known one when sorting ascending.
const unknownRank = 99

func urgencyRank(u string) int {
	switch strings.ToLower(strings.TrimSpace(u)) {
	case "low":
		return 0
	case "medium":
		return 1
	case "high":
		return 2
	default:
		return unknownRank
	}
}

func statusRank(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return 0
	case "investigating":
		return 1
	case "resolved":
		return 2
	default:
		return unknownRank
	}
}

// Buckets partitions tips by urgency. A tip with an empty or
// unrecognized urgency lands in no bucket at all; it stays visible
// in the table but not here.
type Buckets struct {
	High   []repository.Tip
	Medium []repository.Tip
	Low    []repository.Tip
}

// BucketLevel is one bucket with its display name, in render order.
type BucketLevel struct {
	Name string
	Tips []repository.Tip
}

// BucketByUrgency partitions the snapshot case-insensitively:
// "high", "High" and "HIGH" all count toward the High bucket.
func BucketByUrgency(tips []repository.Tip) Buckets {
	var b Buckets
	for _, t := range tips {
		switch strings.ToLower(strings.TrimSpace(t.Urgency)) {
		case "high":
			b.High = append(b.High, t)
		case "medium":
			b.Medium = append(b.Medium, t)
		case "low":
			b.Low = append(b.Low, t)
		}
	}
	return b
}

// Levels returns the buckets in fixed display order: High, Medium, Low.
func (b Buckets) Levels() []BucketLevel {
	return []BucketLevel{
		{Name: "High", Tips: b.High},
		{Name: "Medium", Tips: b.Medium},
		{Name: "Low", Tips: b.Low},
	}
}

// TableState tracks the active sort column and direction, mirroring
// the clickable table headers.
type TableState struct {
	Key       SortKey
	Ascending bool
}

// NewTableState starts on tip_name ascending, the table's default.
func NewTableState() TableState {
	return TableState{Key: SortByTipName, Ascending: true}
}

// Toggle handles a header click: the active key flips direction,
// any other key becomes active ascending.
func (s *TableState) Toggle(key SortKey) {
	if s.Key == key {
		s.Ascending = !s.Ascending
		return
	}
	s.Key = key
	s.Ascending = true
}

// Apply filters the snapshot by a case-insensitive substring match
// on tip name, then stably sorts it by the active key. The input
// slice is left untouched.
func (s TableState) Apply(tips []repository.Tip, search string) []repository.Tip {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]repository.Tip, 0, len(tips))
	for _, t := range tips {
		if q == "" || strings.Contains(strings.ToLower(t.TipName), q) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.Ascending {
			return s.less(out[i], out[j])
		}
		return s.less(out[j], out[i])
	})
	return out
}

func (s TableState) less(a, b repository.Tip) bool {
	switch s.Key {
	case SortByIncidentType:
		return strings.ToLower(a.IncidentType) < strings.ToLower(b.IncidentType)
	case SortByLocation:
		return strings.ToLower(a.Location) < strings.ToLower(b.Location)
	case SortByUrgency:
		return urgencyRank(a.Urgency) < urgencyRank(b.Urgency)
	case SortByStatus:
		return statusRank(a.Status) < statusRank(b.Status)
	default:
		return strings.ToLower(a.TipName) < strings.ToLower(b.TipName)
	}
}
