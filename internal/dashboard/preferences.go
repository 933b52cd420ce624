package dashboard

import (
	"encoding/json"
	"sort"
)

// Preferences is the stored filter blob of an organization.
type Preferences struct {
	Status string `json:"status,omitempty"`
	Range  Range  `json:"range,omitempty"`
	Sort   Sort   `json:"sort,omitempty"`
}

// ParsePreferences decodes a stored blob. Anything unreadable yields empty
// preferences.
func ParsePreferences(data []byte) Preferences {
	var p Preferences
	if len(data) == 0 || json.Unmarshal(data, &p) != nil {
		return Preferences{}
	}
	if !contains(statuses, p.Status) {
		p.Status = ""
	}
	if !p.Range.valid() {
		p.Range = ""
	}
	if !p.Sort.valid() {
		p.Sort = ""
	}
	return p
}

// Checklist holds the onboarding checklist flags of an organization.
type Checklist struct {
	Dismissed bool     `json:"dismissed"`
	Collapsed bool     `json:"collapsed"`
	Completed []string `json:"completed,omitempty"`
}

// ChecklistSteps lists the onboarding steps in display order.
var ChecklistSteps = []string{"verify_email", "connect_payments", "create_event", "create_tournament"}

// ParseChecklist decodes stored flags. Anything unreadable yields the zero value.
func ParseChecklist(data []byte) Checklist {
	var c Checklist
	if len(data) == 0 || json.Unmarshal(data, &c) != nil {
		return Checklist{}
	}
	c.Completed = normalizeSteps(c.Completed)
	return c
}

// Complete marks step as done.
func (c *Checklist) Complete(step string) {
	c.Completed = normalizeSteps(append(c.Completed, step))
}

// Done reports whether every step is complete.
func (c Checklist) Done() bool {
	return len(c.Completed) == len(ChecklistSteps)
}

// normalizeSteps drops unknown and repeated steps and sorts by display order.
func normalizeSteps(steps []string) []string {
	order := make(map[string]int, len(ChecklistSteps))
	for i, step := range ChecklistSteps {
		order[step] = i
	}
	seen := map[string]bool{}
	var out []string
	for _, step := range steps {
		if _, known := order[step]; !known || seen[step] {
			continue
		}
		seen[step] = true
		out = append(out, step)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}
