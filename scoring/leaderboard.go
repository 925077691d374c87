package scoring

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type SortKey string

const (
	SortTotal   SortKey = "total"
	SortAuto    SortKey = "auto"
	SortTeleop  SortKey = "teleop"
	SortEndgame SortKey = "endgame"
)

var SortKeys = []SortKey{SortTotal, SortAuto, SortTeleop, SortEndgame}

// ParseSortKey trims and lowercases s. Unknown keys are kept as-is and sort
// as a no-op.
func ParseSortKey(s string) SortKey {
	return SortKey(strings.ToLower(strings.TrimSpace(s)))
}

func (k SortKey) value(s TeamSummary) (float64, bool) {
	switch k {
	case SortTotal:
		return s.Total, true
	case SortAuto:
		return s.Auto, true
	case SortTeleop:
		return s.Teleop, true
	case SortEndgame:
		return s.Endgame, true
	}
	return 0, false
}

// FilterAndSort keeps the summaries whose team number contains query, or
// whose name contains it ignoring case, then sorts them stably by key in
// descending order. The input slice is left untouched.
func FilterAndSort(summaries []TeamSummary, query string, key SortKey) []TeamSummary {
	fold := cases.Fold()
	q := fold.String(query)

	out := make([]TeamSummary, 0, len(summaries))
	for _, s := range summaries {
		if strings.Contains(s.TeamNumber, query) || strings.Contains(fold.String(s.TeamName), q) {
			out = append(out, s)
		}
	}

	if _, ok := key.value(TeamSummary{}); !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b TeamSummary) int {
		av, _ := key.value(a)
		bv, _ := key.value(b)
		return cmp.Compare(bv, av)
	})
	return out
}
