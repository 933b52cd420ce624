// Package dashboard resolves the organizer dashboard view from URL query
// parameters. The query string is the source of truth; stored preferences only
// fill in what the URL leaves out.
package dashboard

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Tab is a top-level dashboard area.
type Tab string

const (
	TabOverview Tab = "overview"
	TabEvents   Tab = "events"
	TabPadel    Tab = "padel"
	TabFinance  Tab = "finance"
	TabSettings Tab = "settings"
)

// sections lists the valid sections per tab. The first is the default.
var sections = map[Tab][]string{
	TabOverview: {"summary"},
	TabEvents:   {"list", "drafts"},
	TabPadel:    {"tournaments", "clubs", "categories"},
	TabFinance:  {"summary", "sales", "payouts", "exports"},
	TabSettings: {"modules", "payments"},
}

// Range limits time-based views.
type Range string

const (
	Range7Days  Range = "7d"
	Range30Days Range = "30d"
	Range90Days Range = "90d"
	RangeAll    Range = "all"
)

// Days returns the number of days covered, or 0 for all time.
func (r Range) Days() int {
	switch r {
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	}
	return 0
}

// Since returns the start of the range relative to now, or nil for all time.
func (r Range) Since(now time.Time) *time.Time {
	days := r.Days()
	if days == 0 {
		return nil
	}
	t := now.AddDate(0, 0, -days)
	return &t
}

// ParseRange reads a range parameter. Empty input is not a range.
func ParseRange(s string) (Range, bool) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	return r, r.valid()
}

func (r Range) valid() bool {
	switch r {
	case Range7Days, Range30Days, Range90Days, RangeAll:
		return true
	}
	return false
}

// Sort orders the events table.
type Sort string

const (
	SortRecent   Sort = "recent"
	SortUpcoming Sort = "upcoming"
	SortTitle    Sort = "title"
)

func (s Sort) valid() bool {
	return s == SortRecent || s == SortUpcoming || s == SortTitle
}

var statuses = []string{"", "published", "cancelled", "finished"}

const (
	// DefaultPerPage is the events table page size.
	DefaultPerPage = 20
	maxSearchLen   = 100

	// MaxPage keeps the events table offset within an int32.
	MaxPage = math.MaxInt32 / DefaultPerPage
)

// Filters is the resolved dashboard view.
type Filters struct {
	Tab     Tab
	Section string
	Status  string // empty for all
	Range   Range
	Search  string
	Sort    Sort
	Page    int
}

// DefaultFilters returns the view shown for an empty query.
func DefaultFilters() Filters {
	return Filters{
		Tab:     TabOverview,
		Section: sections[TabOverview][0],
		Range:   Range30Days,
		Sort:    SortRecent,
		Page:    1,
	}
}

// FromQuery resolves filters from q. Values missing from or invalid in q fall
// back to prefs, then to the defaults.
func FromQuery(q url.Values, prefs Preferences) Filters {
	f := DefaultFilters()
	f.applyPreferences(prefs)

	if tab := Tab(q.Get("tab")); sections[tab] != nil {
		f.Tab = tab
	}
	f.Section = sections[f.Tab][0]
	if section := q.Get("section"); contains(sections[f.Tab], section) {
		f.Section = section
	}

	if q.Has("status") {
		if status := q.Get("status"); contains(statuses, status) {
			f.Status = status
		}
	}
	if r := Range(q.Get("range")); r.valid() {
		f.Range = r
	}
	if s := Sort(q.Get("sort")); s.valid() {
		f.Sort = s
	}

	search := strings.TrimSpace(q.Get("q"))
	if len(search) > maxSearchLen {
		search = search[:maxSearchLen]
	}
	f.Search = search

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		f.Page = min(page, MaxPage)
	}
	return f
}

func (f *Filters) applyPreferences(p Preferences) {
	if contains(statuses, p.Status) {
		f.Status = p.Status
	}
	if p.Range.valid() {
		f.Range = p.Range
	}
	if p.Sort.valid() {
		f.Sort = p.Sort
	}
}

// Query returns the canonical query for f. Values equal to the defaults are
// omitted so the URL stays short.
func (f Filters) Query() url.Values {
	d := DefaultFilters()
	q := url.Values{}
	if f.Tab != d.Tab {
		q.Set("tab", string(f.Tab))
	}
	if tabSections := sections[f.Tab]; len(tabSections) > 0 && f.Section != tabSections[0] {
		q.Set("section", f.Section)
	}
	if f.Status != d.Status {
		q.Set("status", f.Status)
	}
	if f.Range != d.Range {
		q.Set("range", string(f.Range))
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Sort != d.Sort {
		q.Set("sort", string(f.Sort))
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// Preferences returns the part of f worth remembering between visits.
func (f Filters) Preferences() Preferences {
	return Preferences{Status: f.Status, Range: f.Range, Sort: f.Sort}
}

// Offset returns the events table offset for the current page.
func (f Filters) Offset(perPage int) int {
	return (f.Page - 1) * perPage
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
