package draft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/DukeRupert/courtside/internal/eventform"
)

// Encode serializes a form snapshot.
func Encode(s eventform.State) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses a stored draft. Numeric fields may have been written as JSON
// numbers or strings; they come back as the strings the form works with, with
// quantities reduced to plain integers ("12.0" and 12 both become "12").
func Decode(data []byte) (eventform.State, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return eventform.State{}, fmt.Errorf("draft is not a JSON object")
	}

	w := wireState{plainState: plainState(eventform.DefaultState())}
	if err := json.Unmarshal(data, &w); err != nil {
		return eventform.State{}, fmt.Errorf("decode draft: %w", err)
	}

	s := eventform.State(w.plainState)
	if w.Tickets != nil {
		s.Tickets = make([]eventform.TicketRow, 0, len(*w.Tickets))
		for _, row := range *w.Tickets {
			s.Tickets = append(s.Tickets, row.normalize())
		}
	}
	if w.FreeTicket != nil {
		s.FreeTicket = eventform.FreeTicket{
			Name:         string(w.FreeTicket.Name),
			Capacity:     normalizeQuantity(string(w.FreeTicket.Capacity)),
			PublicAccess: w.FreeTicket.PublicAccess == nil || *w.FreeTicket.PublicAccess,
		}
	}

	s.CategoryConfigs = eventform.CategoryConfigs{}
	for key, cfg := range w.CategoryConfigs {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		s.CategoryConfigs[id] = eventform.CategoryConfig{
			CapacityTeams: normalizeQuantity(string(cfg.CapacityTeams)),
			Format:        cfg.Format,
		}
	}

	if s.Selection == nil {
		s.Selection = eventform.Selection{}
	}
	s.Selection = s.Selection.Normalize()
	if s.LocationMode != eventform.LocationSearch {
		s.LocationMode = eventform.LocationManual
	}
	if s.Padel.ClubMode != eventform.ClubPartner {
		s.Padel.ClubMode = eventform.ClubOwn
	}
	return s, nil
}

// plainState drops any methods of eventform.State so the wire struct below can
// shadow individual fields.
type plainState eventform.State

type wireState struct {
	plainState
	Tickets         *[]wireRow            `json:"tickets"`
	FreeTicket      *wireFreeTicket       `json:"freeTicket"`
	CategoryConfigs map[string]wireConfig `json:"categoryConfigs"`
}

type wireRow struct {
	Name            looseString `json:"name"`
	Price           looseString `json:"price"`
	TotalQuantity   looseString `json:"totalQuantity"`
	PublicAccess    *bool       `json:"publicAccess"`
	PadelCategoryID *int64      `json:"padelCategoryId"`
}

func (r wireRow) normalize() eventform.TicketRow {
	return eventform.TicketRow{
		Name:            string(r.Name),
		Price:           strings.TrimSpace(string(r.Price)),
		TotalQuantity:   normalizeQuantity(string(r.TotalQuantity)),
		PublicAccess:    r.PublicAccess,
		PadelCategoryID: r.PadelCategoryID,
	}
}

type wireFreeTicket struct {
	Name         looseString `json:"name"`
	Capacity     looseString `json:"capacity"`
	PublicAccess *bool       `json:"publicAccess"`
}

type wireConfig struct {
	CapacityTeams looseString `json:"capacityTeams"`
	Format        *string     `json:"format"`
}

// looseString accepts a JSON string, number, boolean or null.
type looseString string

func (l *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = looseString(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*l = looseString(b)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*l = looseString(n.String())
	}
	return nil
}

// normalizeQuantity rewrites integral values as plain integer strings. Other
// text is kept trimmed so validation can still point at it.
func normalizeQuantity(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return v
	}
	if math.Abs(f) >= math.MaxInt64 {
		return v
	}
	return strconv.FormatInt(int64(f), 10)
}
