package eventform

import (
	"github.com/DukeRupert/courtside/internal/domain"
)

// GatewayBanner is shown when paid tickets cannot be sold yet.
type GatewayBanner struct {
	Message       string `json:"message"`
	OnboardingURL string `json:"onboardingUrl,omitempty"`
}

// Form is the state container of the creation wizard. Every mutating method
// runs the selection and mode handlers before returning, so the derived
// collections are always consistent with the inputs.
//
// A Form is not safe for concurrent use.
type Form struct {
	state     State
	catalog   Catalog
	policy    Policy
	readiness domain.GatewayReadiness
	errors    FormErrors
	banner    *GatewayBanner
	hydrated  bool
}

// New returns a form with default state.
func New(cat Catalog, p Policy) *Form {
	return NewFromState(DefaultState(), cat, p)
}

// NewFromState returns a form seeded with s. The derived collections are
// reconciled immediately.
func NewFromState(s State, cat Catalog, p Policy) *Form {
	if cat == nil {
		cat = Catalog{}
	}
	f := &Form{
		state:     s.Clone(),
		catalog:   cat,
		policy:    p,
		readiness: domain.GatewayReadiness{PaymentsReady: true, EmailVerified: true},
		errors:    FormErrors{},
	}
	f.state.Selection = f.state.Selection.Normalize()
	if f.state.CategoryConfigs == nil {
		f.state.CategoryConfigs = CategoryConfigs{}
	}
	f.onModeChanged()
	return f
}

// State returns a copy of the current state.
func (f *Form) State() State { return f.state.Clone() }

// Policy returns the policy the form evaluates against.
func (f *Form) Policy() Policy { return f.policy }

// Catalog returns the categories known to the form.
func (f *Form) Catalog() Catalog { return f.catalog }

// SetCatalog replaces the category catalog and re-tags category rows.
func (f *Form) SetCatalog(cat Catalog) {
	if cat == nil {
		cat = Catalog{}
	}
	f.catalog = cat
	f.onCategorySelectionChanged()
}

// Errors returns a copy of the stored field errors.
func (f *Form) Errors() FormErrors {
	out := make(FormErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Banner returns the gateway banner, or nil when paid tickets can be sold.
func (f *Form) Banner() *GatewayBanner { return f.banner }

// Rows returns the ticket rows as shown to the organizer.
func (f *Form) Rows() []TicketRow {
	return Rows(f.state, f.catalog, f.policy)
}

// Validate runs a full pass, replaces the stored errors and returns the
// issues in check order.
func (f *Form) Validate() []Issue {
	issues := CollectFormErrors(f.state, f.catalog, f.readiness, f.policy)
	f.errors = ToFormErrors(issues)
	return issues
}

// Payload builds the creation request for the current state.
func (f *Form) Payload() EventPayload {
	return BuildPayload(f.state, f.catalog, f.policy)
}

// ApplyReadiness records the organization's gateway readiness. When paid
// tickets cannot be sold the form switches to free mode and shows a banner.
func (f *Form) ApplyReadiness(r domain.GatewayReadiness) {
	f.readiness = r
	if r.Ready() {
		f.banner = nil
		f.afterEdit()
		return
	}
	f.banner = &GatewayBanner{
		Message:       f.policy.printer().Sprintf(msgGatewayNotReady),
		OnboardingURL: r.OnboardingURL,
	}
	if !f.state.IsFree {
		f.state.IsFree = true
		f.onModeChanged()
	}
	f.afterEdit()
}

// DismissBanner hides the gateway banner until readiness is applied again.
func (f *Form) DismissBanner() { f.banner = nil }

// Snapshot returns the state to persist as a draft.
func (f *Form) Snapshot() State { return f.state.Clone() }

// Hydrate replaces the state with a restored draft. Only the first call
// has an effect; it reports whether the draft was applied.
func (f *Form) Hydrate(s State) bool {
	if f.hydrated {
		return false
	}
	f.hydrated = true
	f.state = s.Clone()
	f.state.Selection = f.state.Selection.Normalize()
	if f.state.CategoryConfigs == nil {
		f.state.CategoryConfigs = CategoryConfigs{}
	}
	if !f.readiness.Ready() {
		f.state.IsFree = true
	}
	f.onModeChanged()
	return true
}

// MarkHydrated ends the hydration window without applying a draft.
func (f *Form) MarkHydrated() { f.hydrated = true }

// Hydrated reports whether the hydration window is closed.
func (f *Form) Hydrated() bool { return f.hydrated }

// =============================================================================
// Scalar fields
// =============================================================================

func (f *Form) SetTitle(v string)       { f.state.Title = v; f.afterEdit() }
func (f *Form) SetDescription(v string) { f.state.Description = v; f.afterEdit() }
func (f *Form) SetStartsAt(v string)    { f.state.StartsAt = v; f.afterEdit() }
func (f *Form) SetEndsAt(v string)      { f.state.EndsAt = v; f.afterEdit() }
func (f *Form) SetCoverURL(v string)    { f.state.CoverURL = v; f.afterEdit() }

// SetLocationCity sets the city of the venue.
func (f *Form) SetLocationCity(v string) {
	f.state.LocationCity = v
	f.afterEdit()
}

// SetLocationName sets the venue name typed in manual mode.
func (f *Form) SetLocationName(v string) {
	f.state.LocationName = v
	f.afterEdit()
}

// SetAddress sets the free-text address. In search mode typing invalidates
// any previously confirmed suggestion.
func (f *Form) SetAddress(v string) {
	f.state.Address = v
	if f.state.LocationMode == LocationSearch {
		f.state.LocationProviderID = ""
	}
	f.afterEdit()
}

// SetLocationMode switches between manual entry and address search.
func (f *Form) SetLocationMode(m LocationMode) {
	if m != LocationSearch {
		m = LocationManual
	}
	f.state.LocationMode = m
	f.afterEdit()
}

// ConfirmLocation applies a resolved address suggestion.
func (f *Form) ConfirmLocation(providerID, name, city, address string) {
	f.state.LocationMode = LocationSearch
	f.state.LocationProviderID = providerID
	if name != "" {
		f.state.LocationName = name
	}
	if city != "" {
		f.state.LocationCity = city
	}
	if address != "" {
		f.state.Address = address
	}
	f.afterEdit()
}

// SetLocationTBD marks the venue as to be announced.
func (f *Form) SetLocationTBD(v bool) {
	f.state.LocationTBD = v
	f.afterEdit()
}

// =============================================================================
// Modes
// =============================================================================

// SetPreset switches between a generic event and a padel tournament.
func (f *Form) SetPreset(p domain.EventPreset) {
	if p != domain.EventPresetPadel {
		p = domain.EventPresetDefault
	}
	f.state.Preset = p
	f.onModeChanged()
	f.afterEdit()
}

// SetFree switches between free and paid tickets.
func (f *Form) SetFree(v bool) {
	f.state.IsFree = v
	f.onModeChanged()
	f.afterEdit()
}

// SetFreeTicket replaces the free ticket settings.
func (f *Form) SetFreeTicket(t FreeTicket) {
	f.state.FreeTicket = t
	f.afterEdit()
}

// =============================================================================
// Padel
// =============================================================================

// SetClub selects the hosting club. Changing club clears courts and staff.
func (f *Form) SetClub(clubID int64, mode ClubMode, availableStaff int) {
	if f.state.Padel.ClubID == nil || *f.state.Padel.ClubID != clubID {
		f.state.Padel.CourtIDs = nil
		f.state.Padel.StaffIDs = nil
	}
	if mode != ClubPartner {
		mode = ClubOwn
	}
	f.state.Padel.ClubID = &clubID
	f.state.Padel.ClubMode = mode
	f.state.Padel.AvailableStaff = availableStaff
	f.afterEdit()
}

// SetCourts sets the courts used by the tournament.
func (f *Form) SetCourts(ids []int64) {
	f.state.Padel.CourtIDs = append([]int64(nil), ids...)
	f.afterEdit()
}

// SetStaff sets the staff working the tournament.
func (f *Form) SetStaff(ids []int64) {
	f.state.Padel.StaffIDs = append([]int64(nil), ids...)
	f.afterEdit()
}

// SetTournamentFormat sets the tournament-level format.
func (f *Form) SetTournamentFormat(format string) {
	f.state.Padel.Format = format
	f.afterEdit()
}

// SetRuleSet sets the rule set of the tournament.
func (f *Form) SetRuleSet(id *int64) {
	f.state.Padel.RuleSetID = copyInt64(id)
	f.afterEdit()
}

// SetRegistrationWindow sets when registration opens and closes.
func (f *Form) SetRegistrationWindow(opensAt, closesAt string) {
	f.state.Padel.RegistrationOpensAt = opensAt
	f.state.Padel.RegistrationClosesAt = closesAt
	f.afterEdit()
}

// ToggleCategory adds or removes a category and reconciles the dependent
// collections. It returns true when the category was added.
func (f *Form) ToggleCategory(id int64) bool {
	added := f.state.Selection.Toggle(id)
	f.onCategorySelectionChanged()
	f.afterEdit()
	return added
}

// SetCategoryConfig merges patch into a selected category's configuration.
// Unselected categories are ignored.
func (f *Form) SetCategoryConfig(id int64, patch ConfigPatch) {
	if !f.state.Selection.Contains(id) {
		return
	}
	f.state.CategoryConfigs.Set(id, patch)
	f.afterEdit()
}

// ApplyFormatToAll copies the tournament format to every selected category.
func (f *Form) ApplyFormatToAll() {
	f.state.CategoryConfigs.ApplyFormatToAll(f.state.Selection, f.state.Padel.Format)
	f.afterEdit()
}

// ApplyCapacityToAll copies the first category's capacity to the others.
func (f *Form) ApplyCapacityToAll() {
	f.state.CategoryConfigs.ApplyCapacityToAll(f.state.Selection)
	f.afterEdit()
}

// =============================================================================
// Tickets
// =============================================================================

func (f *Form) rowsLocked() bool {
	return f.state.IsFree || f.state.PaidPadel()
}

// AddTicket appends a blank row. Rejected when rows are derived.
func (f *Form) AddTicket() error {
	if f.rowsLocked() {
		return ErrTicketRowsLocked
	}
	f.state.Tickets = append(f.state.Tickets, TicketRow{})
	f.afterEdit()
	return nil
}

// RemoveTicket deletes row i. Rejected when rows are derived.
func (f *Form) RemoveTicket(i int) error {
	if f.rowsLocked() {
		return ErrTicketRowsLocked
	}
	if i < 0 || i >= len(f.state.Tickets) {
		return ErrTicketIndex
	}
	f.state.Tickets = append(f.state.Tickets[:i:i], f.state.Tickets[i+1:]...)
	f.afterEdit()
	return nil
}

// UpdateTicket edits row i.
func (f *Form) UpdateTicket(i int, patch TicketPatch) error {
	if f.state.IsFree {
		return ErrTicketRowsLocked
	}
	if i < 0 || i >= len(f.state.Tickets) {
		return ErrTicketIndex
	}
	row, err := applyPatch(f.state.Tickets[i], patch, f.state.PaidPadel(), f.catalog)
	if err != nil {
		return err
	}
	f.state.Tickets[i] = row
	f.afterEdit()
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

// onCategorySelectionChanged keeps the config map keyed by the selection and,
// in paid padel mode, the ticket rows one-to-one with it.
func (f *Form) onCategorySelectionChanged() {
	f.state.CategoryConfigs = f.state.CategoryConfigs.Reconcile(f.state.Selection)
	if f.state.PaidPadel() {
		f.state.Tickets = ReconcilePadelTickets(f.state.Tickets, f.state.Selection, f.catalog, f.policy.DefaultTicketName)
	}
}

// onModeChanged runs after the preset or the free flag changes.
func (f *Form) onModeChanged() {
	if !f.state.IsFree && !f.state.IsPadel() && len(f.state.Tickets) == 0 {
		f.state.Tickets = []TicketRow{{}}
	}
	f.onCategorySelectionChanged()
}

// afterEdit clears stored errors whose field passes again. It never adds
// errors; only Validate does.
func (f *Form) afterEdit() {
	if len(f.errors) == 0 {
		return
	}
	current := ToFormErrors(CollectFormErrors(f.state, f.catalog, f.readiness, f.policy))
	for field := range f.errors {
		if _, failing := current[field]; !failing {
			delete(f.errors, field)
		}
	}
}
