package eventform

import (
	"golang.org/x/text/message"

	"github.com/DukeRupert/courtside/internal/domain"
)

// issueCollector keeps the first message reported for each field.
type issueCollector struct {
	printer *message.Printer
	issues  []Issue
	seen    map[FieldKey]bool
}

func newCollector(p Policy) *issueCollector {
	return &issueCollector{printer: p.printer(), seen: make(map[FieldKey]bool)}
}

func (c *issueCollector) add(field FieldKey, key string, args ...interface{}) {
	if c.seen[field] {
		return
	}
	c.seen[field] = true
	c.issues = append(c.issues, Issue{Field: field, Message: c.printer.Sprintf(key, args...)})
}

func (c *issueCollector) has(field FieldKey) bool {
	return c.seen[field]
}

// CollectFormErrors checks the form state and returns its issues in a fixed
// order. Each field contributes at most one issue.
func CollectFormErrors(s State, cat Catalog, readiness domain.GatewayReadiness, p Policy) []Issue {
	c := newCollector(p)

	if trim(s.Title) == "" {
		c.add(FieldTitle, msgTitleRequired)
	}

	start, startOK := p.ParseDateTime(s.StartsAt)
	switch {
	case trim(s.StartsAt) == "":
		c.add(FieldStartsAt, msgStartRequired)
	case !startOK:
		c.add(FieldStartsAt, msgStartInvalid)
	}

	if !s.LocationTBD {
		if trim(s.LocationCity) == "" {
			c.add(FieldLocationCity, msgCityRequired)
		}
		switch s.LocationMode {
		case LocationSearch:
			if trim(s.LocationProviderID) == "" {
				c.add(FieldAddress, msgLocationUnconfirmed)
			}
		default:
			if trim(s.LocationName) == "" {
				c.add(FieldLocationName, msgLocationNameRequired)
			}
		}
	}

	end, endOK := p.ParseDateTime(s.EndsAt)
	switch {
	case trim(s.EndsAt) != "" && !endOK:
		c.add(FieldEndsAt, msgEndInvalid)
	case endOK && startOK && !end.After(start):
		c.add(FieldEndsAt, msgEndBeforeStart)
	}

	checkTickets(c, s, p)

	if !s.IsFree && hasPaidTicket(s) && !readiness.Ready() {
		c.add(FieldTickets, msgGatewayNotReady)
	}

	if s.IsPadel() {
		checkPadel(c, s, cat, p)
	}

	return c.issues
}

func checkTickets(c *issueCollector, s State, p Policy) {
	if s.IsFree {
		if !validCapacity(s.FreeTicket.Capacity) {
			c.add(FieldTickets, msgTicketCapacityInvalid)
			return
		}
		if SplitFree(s, p) {
			for _, id := range s.Selection {
				if !validCapacity(s.CategoryConfigs[id].CapacityTeams) {
					c.add(FieldTickets, msgTicketCapacityInvalid)
					return
				}
			}
		}
		return
	}

	rows := make([]TicketRow, 0, len(s.Tickets))
	for _, row := range s.Tickets {
		if row.isBlank() && row.PadelCategoryID == nil {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		c.add(FieldTickets, msgTicketsRequired)
		return
	}

	// Price bounds are reported ahead of name and capacity problems.
	for _, row := range rows {
		price := ParsePrice(row.Price)
		switch {
		case price < 0:
			c.add(FieldTickets, msgTicketPriceNegative)
		case price > MaxTicketPrice:
			c.add(FieldTickets, msgTicketPriceMaximum, MaxTicketPrice)
		case price > 0 && price < p.MinPaidPrice:
			c.add(FieldTickets, msgTicketPriceMinimum, p.MinPaidPrice)
		}
	}
	for _, row := range rows {
		if trim(row.Name) == "" {
			c.add(FieldTickets, msgTicketNameRequired)
		}
		if !validCapacity(row.TotalQuantity) {
			c.add(FieldTickets, msgTicketCapacityInvalid)
		}
	}
}

func checkPadel(c *issueCollector, s State, cat Catalog, p Policy) {
	if s.Padel.ClubID == nil {
		c.add(FieldPadel, msgClubRequired)
	}
	if len(s.Padel.CourtIDs) == 0 {
		c.add(FieldPadel, msgCourtRequired)
	}
	if s.Padel.ClubMode == ClubPartner && s.Padel.AvailableStaff > 0 && len(s.Padel.StaffIDs) == 0 {
		c.add(FieldPadel, msgStaffRequired)
	}
	if len(s.Selection) == 0 {
		c.add(FieldPadel, msgCategoryRequired)
	}

	if !s.IsFree && !c.has(FieldTickets) {
		checkCategoryTickets(c, s, cat)
	}

	opens, openOK := p.ParseDateTime(s.Padel.RegistrationOpensAt)
	closes, closeOK := p.ParseDateTime(s.Padel.RegistrationClosesAt)
	if openOK && closeOK && !closes.After(opens) {
		c.add(FieldPadel, msgRegistrationWindow)
	}
}

// checkCategoryTickets enforces one row per selected category, no duplicate
// references and the category tag at the end of every row name.
func checkCategoryTickets(c *issueCollector, s State, cat Catalog) {
	counts := make(map[int64]int, len(s.Selection))
	for _, row := range s.Tickets {
		if row.PadelCategoryID == nil {
			continue
		}
		id := *row.PadelCategoryID
		counts[id]++
		if counts[id] > 1 {
			c.add(FieldTickets, msgCategoryTicketDup)
			return
		}
		if tag := cat.Tag(id); !HasTag(row.Name, tag) {
			c.add(FieldTickets, msgCategoryTagMissing, trim(row.Name), tag)
			return
		}
	}
	if len(counts) != len(s.Selection) {
		c.add(FieldTickets, msgCategoryTicketMissing)
		return
	}
	for _, id := range s.Selection {
		if counts[id] != 1 {
			c.add(FieldTickets, msgCategoryTicketMissing)
			return
		}
	}
}

func hasPaidTicket(s State) bool {
	for _, row := range s.Tickets {
		if ParsePrice(row.Price) > 0 {
			return true
		}
	}
	return false
}

func validCapacity(s string) bool {
	return trim(s) == "" || ParseCapacity(s) != nil
}

// ToFormErrors indexes issues by field.
func ToFormErrors(issues []Issue) FormErrors {
	errs := make(FormErrors, len(issues))
	for _, issue := range issues {
		if _, ok := errs[issue.Field]; !ok {
			errs[issue.Field] = issue.Message
		}
	}
	return errs
}

// ValidationError converts issues into a domain validation error. It returns
// nil when there are no issues.
func ValidationError(op string, issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	ve := &domain.ValidationError{Op: op, Issues: make([]domain.FieldIssue, 0, len(issues))}
	for _, issue := range issues {
		ve.Issues = append(ve.Issues, domain.FieldIssue{Field: string(issue.Field), Message: issue.Message})
	}
	return ve
}
