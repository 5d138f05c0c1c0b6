package submissiondomain

import (
	"sort"
	"strings"
	"time"
)

// SortKey orders the admin submission list.
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByStatus    SortKey = "status"
	SortByApplicant SortKey = "applicant"
)

// ParseSortKey falls back to date for empty or unknown keys.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByStatus:
		return SortByStatus
	case SortByApplicant:
		return SortByApplicant
	default:
		return SortByDate
	}
}

// Descending reads the order parameter. Dates default to newest first.
func Descending(order string, key SortKey) bool {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc":
		return false
	case "desc":
		return true
	}
	return key == SortByDate
}

// Sortable is what the admin list sorts on.
type Sortable interface {
	SortDate() time.Time
	SortStatus() Status
	SortApplicant() string
}

// Sort orders items in place. Ties keep newest first.
func Sort[T Sortable](items []T, key SortKey, desc bool) {
	less := func(a, b T) int {
		switch key {
		case SortByStatus:
			return strings.Compare(string(a.SortStatus()), string(b.SortStatus()))
		case SortByApplicant:
			return strings.Compare(strings.ToLower(a.SortApplicant()), strings.ToLower(b.SortApplicant()))
		default:
			return a.SortDate().Compare(b.SortDate())
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := less(items[i], items[j])
		if c == 0 {
			return items[i].SortDate().After(items[j].SortDate())
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
