package eventform

import (
	"errors"
)

var (
	// ErrTicketRowsLocked is returned when rows are added or removed while the
	// rows follow the category selection (paid padel) or are derived (free).
	ErrTicketRowsLocked = errors.New("ticket rows follow the current mode and cannot be added or removed")

	// ErrTicketFieldLocked is returned when a paid padel row edit touches a
	// field other than name, price or capacity.
	ErrTicketFieldLocked = errors.New("only name, price and capacity can be edited on category tickets")

	// ErrTicketIndex is returned for an out-of-range row index.
	ErrTicketIndex = errors.New("ticket row does not exist")
)

// TicketPatch is a partial edit of one ticket row.
type TicketPatch struct {
	Name          *string
	Price         *string
	TotalQuantity *string
	PublicAccess  *bool
}

type ticketTemplate struct {
	base         string
	price        string
	quantity     string
	publicAccess *bool
}

// templateFrom extracts the template used to synthesize rows for newly
// selected categories from the first non-blank row.
func templateFrom(rows []TicketRow, cat Catalog, defaultName string) ticketTemplate {
	for _, row := range rows {
		if row.isBlank() {
			continue
		}
		base := cat.BaseName(row.Name)
		if base == "" {
			base = defaultName
		}
		return ticketTemplate{
			base:         base,
			price:        trim(row.Price),
			quantity:     trim(row.TotalQuantity),
			publicAccess: copyBool(row.PublicAccess),
		}
	}
	return ticketTemplate{base: defaultName}
}

// ReconcilePadelTickets returns exactly one row per selected category, in
// selection order. A row already referencing a category is reused so typed
// prices and capacities survive; missing rows are synthesized from the
// template row. Rows without a selected category are dropped.
func ReconcilePadelTickets(rows []TicketRow, sel Selection, cat Catalog, defaultName string) []TicketRow {
	tmpl := templateFrom(rows, cat, defaultName)

	existing := make(map[int64]TicketRow, len(rows))
	for _, row := range rows {
		if row.PadelCategoryID == nil {
			continue
		}
		if _, dup := existing[*row.PadelCategoryID]; !dup {
			existing[*row.PadelCategoryID] = row
		}
	}

	out := make([]TicketRow, 0, len(sel))
	for _, id := range sel {
		if row, ok := existing[id]; ok {
			row = row.clone()
			row.Name = cat.TaggedName(row.Name, id)
			out = append(out, row)
			continue
		}
		categoryID := id
		out = append(out, TicketRow{
			Name:            cat.TaggedName(tmpl.base, id),
			Price:           tmpl.price,
			TotalQuantity:   tmpl.quantity,
			PublicAccess:    copyBool(tmpl.publicAccess),
			PadelCategoryID: &categoryID,
		})
	}
	return out
}

// SplitFree reports whether a free event gets one ticket per category.
func SplitFree(s State, p Policy) bool {
	return s.IsFree && s.IsPadel() && len(s.Selection) > p.SplitThreshold
}

// FreeRows derives the rows of a free event.
func FreeRows(s State, cat Catalog, p Policy) []TicketRow {
	base := trim(s.FreeTicket.Name)
	if base == "" {
		base = p.DefaultFreeTicketName
	}
	public := s.FreeTicket.PublicAccess

	if !SplitFree(s, p) {
		return []TicketRow{{
			Name:          base,
			Price:         "0",
			TotalQuantity: trim(s.FreeTicket.Capacity),
			PublicAccess:  &public,
		}}
	}

	rows := make([]TicketRow, 0, len(s.Selection))
	for _, id := range s.Selection {
		capacity := trim(s.CategoryConfigs[id].CapacityTeams)
		if capacity == "" {
			capacity = trim(s.FreeTicket.Capacity)
		}
		categoryID := id
		visible := public
		rows = append(rows, TicketRow{
			Name:            base + TagSeparator + cat.Label(id),
			Price:           "0",
			TotalQuantity:   capacity,
			PublicAccess:    &visible,
			PadelCategoryID: &categoryID,
		})
	}
	return rows
}

// Rows returns the rows currently shown to the organizer.
func Rows(s State, cat Catalog, p Policy) []TicketRow {
	if s.IsFree {
		return FreeRows(s, cat, p)
	}
	return s.Tickets
}

// applyPatch edits one row. Paid padel rows only accept name, price and
// capacity, and their names are re-tagged.
func applyPatch(row TicketRow, patch TicketPatch, paidPadel bool, cat Catalog) (TicketRow, error) {
	if paidPadel && patch.PublicAccess != nil {
		return row, ErrTicketFieldLocked
	}
	if patch.Name != nil {
		row.Name = *patch.Name
		if paidPadel && row.PadelCategoryID != nil {
			row.Name = cat.TaggedName(row.Name, *row.PadelCategoryID)
		}
	}
	if patch.Price != nil {
		row.Price = *patch.Price
	}
	if patch.TotalQuantity != nil {
		row.TotalQuantity = *patch.TotalQuantity
	}
	if patch.PublicAccess != nil {
		v := *patch.PublicAccess
		row.PublicAccess = &v
	}
	return row, nil
}
