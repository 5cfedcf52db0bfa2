package attention

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AssignBand classifies one feed item. Awareness-only types (signal,
// notification, alignment) always land in AWARE; severity cannot promote
// them. Otherwise high severity, a required decision, an overdue deadline,
// or a blocking flag means NOW; medium severity or a near deadline means
// SOON; low-severity risk signals degrade to AWARE; the default is SOON.
func AssignBand(it FeedItem) Band {
	if awarenessOnly(it.Type) {
		return BandAware
	}
	if it.Severity == SeverityHigh || it.RequiresDecision || it.Overdue || it.Blocking {
		return BandNow
	}
	if it.Severity == SeverityMedium || it.DueSoon {
		return BandSoon
	}
	if it.Severity == SeverityLow && it.Category == "risk" {
		return BandAware
	}
	return BandSoon
}

// Banded is the feed split into its three bands, each sorted with its own
// comparator.
type Banded struct {
	Now   []FeedItem `json:"now"`
	Soon  []FeedItem `json:"soon"`
	Aware []FeedItem `json:"aware"`
}

// SplitBands assigns every item a band, stamps it on the item, and sorts
// each band. The input is not mutated.
func SplitBands(items []FeedItem, now time.Time) Banded {
	var b Banded
	for _, it := range items {
		it.Band = AssignBand(it)
		switch it.Band {
		case BandNow:
			b.Now = append(b.Now, it)
		case BandSoon:
			b.Soon = append(b.Soon, it)
		default:
			b.Aware = append(b.Aware, it)
		}
	}
	SortNow(b.Now, now)
	SortSoon(b.Soon)
	SortAware(b.Aware)
	return b
}

// FilterUrgentOnly keeps NOW items, SOON items with a live deadline
// (due soon or already overdue), and drops all AWARE items. Items must
// already carry their band.
func FilterUrgentOnly(items []FeedItem) []FeedItem {
	var out []FeedItem
	for _, it := range items {
		switch it.Band {
		case BandNow:
			out = append(out, it)
		case BandSoon:
			if it.DueSoon || it.Overdue {
				out = append(out, it)
			}
		}
	}
	return out
}

// SortNow orders the NOW band: severity descending, overdue first, then
// earliest deadline, then oldest item.
func SortNow(items []FeedItem, now time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Overdue != b.Overdue {
			return a.Overdue
		}
		if c := compareDueAt(a.DueAt, b.DueAt); c != 0 {
			return c < 0
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// SortSoon orders the SOON band: earliest deadline first (items with a
// deadline before items without), then severity descending, then oldest.
func SortSoon(items []FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c := compareDueAt(a.DueAt, b.DueAt); c != 0 {
			return c < 0
		}
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// SortAware orders the AWARE band by recency: newest update first. It is
// the only band that sorts on recency rather than urgency.
func SortAware(items []FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}

// compareDueAt orders due dates ascending with nil (no deadline) last.
func compareDueAt(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	default:
		return 0
	}
}

// typeLabels are the singular/plural display labels per feed type used in
// band breakdowns.
var typeLabels = map[Type][2]string{
	TypeDecision:     {"decision", "decisions"},
	TypeDeliverable:  {"deliverable", "deliverables"},
	TypeResearch:     {"research item", "research items"},
	TypeProject:      {"project", "projects"},
	TypeTask:         {"task", "tasks"},
	TypeSignal:       {"signal", "signals"},
	TypeNotification: {"notification", "notifications"},
	TypeAlignment:    {"alignment item", "alignment items"},
}

func labelFor(t Type, n int) string {
	labels, ok := typeLabels[t]
	if !ok {
		labels = [2]string{"item", "items"}
	}
	if n == 1 {
		return labels[0]
	}
	return labels[1]
}

// ComputeBandSummary aggregates one band: item count, max age in days, a
// count-descending "<n> <label>" breakdown joined by a middle dot, and, for
// the SOON band, the earliest due date.
func ComputeBandSummary(band Band, items []FeedItem, now time.Time) BandSummary {
	s := BandSummary{Band: band, Count: len(items)}

	type typeCount struct {
		t Type
		n int
	}
	index := make(map[Type]int)
	var counts []typeCount
	for _, it := range items {
		if age := feedAgeDays(it.CreatedAt, now); age > s.MaxAgeDays {
			s.MaxAgeDays = age
		}
		if at, ok := index[it.Type]; ok {
			counts[at].n++
		} else {
			index[it.Type] = len(counts)
			counts = append(counts, typeCount{t: it.Type, n: 1})
		}
		if band == BandSoon && it.DueAt != nil {
			if s.EarliestDue == nil || it.DueAt.Before(*s.EarliestDue) {
				due := *it.DueAt
				s.EarliestDue = &due
			}
		}
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].n > counts[j].n })
	segments := make([]string, 0, len(counts))
	for _, c := range counts {
		segments = append(segments, fmt.Sprintf("%d %s", c.n, labelFor(c.t, c.n)))
	}
	s.Breakdown = strings.Join(segments, " · ")
	return s
}

// feedAgeDays returns whole days from t to now, floored at zero.
func feedAgeDays(t, now time.Time) int {
	if t.IsZero() || !t.Before(now) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
