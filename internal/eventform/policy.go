package eventform

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Policy holds the product constants the form is evaluated against.
type Policy struct {
	// MinPaidPrice is the smallest price accepted for a paid ticket.
	MinPaidPrice float64

	// SplitThreshold is the number of selected categories above which free
	// padel tournaments get one ticket per category.
	SplitThreshold int

	// Language selects the display language of validation messages.
	Language language.Tag

	// Location is used to interpret dates typed without a zone.
	Location *time.Location

	// DefaultTicketName names synthesized paid rows when no template row exists.
	DefaultTicketName string

	// DefaultFreeTicketName names the free ticket when the organizer left it blank.
	DefaultFreeTicketName string
}

// DefaultPolicy returns the platform defaults.
func DefaultPolicy() Policy {
	return Policy{
		MinPaidPrice:          1.00,
		SplitThreshold:        1,
		Language:              language.Portuguese,
		Location:              time.UTC,
		DefaultTicketName:     "Inscrição",
		DefaultFreeTicketName: "Entrada gratuita",
	}
}

func (p Policy) printer() *message.Printer {
	return message.NewPrinter(p.Language)
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime parses RFC 3339 timestamps and the zone-less formats sent by
// datetime inputs, which are read in the policy location.
func (p Policy) ParseDateTime(value string) (time.Time, bool) {
	value = trim(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, p.location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
