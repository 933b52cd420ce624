package dashboard

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		prefs Preferences
		want  Filters
	}{
		{
			name:  "empty query gives defaults",
			query: "",
			want:  DefaultFilters(),
		},
		{
			name:  "full query",
			query: "tab=events&section=drafts&status=cancelled&range=7d&q=+open+&sort=title&page=3",
			want: Filters{
				Tab: TabEvents, Section: "drafts", Status: "cancelled",
				Range: Range7Days, Search: "open", Sort: SortTitle, Page: 3,
			},
		},
		{
			name:  "invalid values fall back",
			query: "tab=nope&section=drafts&status=deleted&range=1y&sort=price&page=-1",
			want:  DefaultFilters(),
		},
		{
			name:  "section must belong to the tab",
			query: "tab=finance&section=drafts",
			want: Filters{
				Tab: TabFinance, Section: "summary", Range: Range30Days, Sort: SortRecent, Page: 1,
			},
		},
		{
			name:  "preferences fill missing values",
			query: "tab=events",
			prefs: Preferences{Status: "published", Range: RangeAll, Sort: SortUpcoming},
			want: Filters{
				Tab: TabEvents, Section: "list", Status: "published",
				Range: RangeAll, Sort: SortUpcoming, Page: 1,
			},
		},
		{
			name:  "query wins over preferences",
			query: "status=&range=90d",
			prefs: Preferences{Status: "published", Range: RangeAll},
			want: Filters{
				Tab: TabOverview, Section: "summary", Status: "",
				Range: Range90Days, Sort: SortRecent, Page: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FromQuery(q, tt.prefs))
		})
	}
}

func TestFilters_QueryRoundTrip(t *testing.T) {
	f := Filters{
		Tab: TabFinance, Section: "exports", Status: "finished",
		Range: RangeAll, Search: "verão", Sort: SortTitle, Page: 2,
	}

	q := f.Query()
	assert.Equal(t, f, FromQuery(q, Preferences{}))
	assert.Empty(t, DefaultFilters().Query(), "defaults are omitted")
}

func TestFromQuery_TruncatesSearch(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	f := FromQuery(url.Values{"q": {string(long)}}, Preferences{})
	assert.Len(t, f.Search, maxSearchLen)
}

func TestRange(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, RangeAll.Since(now))
	since := Range7Days.Since(now)
	require.NotNil(t, since)
	assert.Equal(t, time.Date(2026, 10, 10, 12, 0, 0, 0, time.UTC), *since)
	assert.Equal(t, 90, Range90Days.Days())
}

func TestFilters_Offset(t *testing.T) {
	f := DefaultFilters()
	assert.Equal(t, 0, f.Offset(DefaultPerPage))
	f.Page = 3
	assert.Equal(t, 40, f.Offset(DefaultPerPage))
}

func TestFromQuery_PageCapped(t *testing.T) {
	f := FromQuery(url.Values{"page": {"999999999999"}}, Preferences{})
	assert.Equal(t, MaxPage, f.Page)
	assert.LessOrEqual(t, f.Offset(DefaultPerPage), math.MaxInt32)
}

func TestParseRange(t *testing.T) {
	r, ok := ParseRange(" 90D ")
	assert.True(t, ok)
	assert.Equal(t, Range90Days, r)
	assert.Equal(t, 90, r.Days())

	_, ok = ParseRange("")
	assert.False(t, ok)
	_, ok = ParseRange("1y")
	assert.False(t, ok)
}
