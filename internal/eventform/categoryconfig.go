package eventform

// CategoryConfig is the per-category tournament configuration. CapacityTeams is
// only meaningful for free tournaments; paid capacity lives on the ticket row.
type CategoryConfig struct {
	CapacityTeams string  `json:"capacityTeams"`
	Format        *string `json:"format"`
}

// ConfigPatch is a partial CategoryConfig. Nil fields keep the prior value; an
// empty Format clears the override.
type ConfigPatch struct {
	CapacityTeams *string
	Format        *string
}

// CategoryConfigs holds one entry per selected category.
type CategoryConfigs map[int64]CategoryConfig

// Set merges patch into the entry for id.
func (c CategoryConfigs) Set(id int64, patch ConfigPatch) {
	cfg := c[id]
	if patch.CapacityTeams != nil {
		cfg.CapacityTeams = *patch.CapacityTeams
	}
	if patch.Format != nil {
		if *patch.Format == "" {
			cfg.Format = nil
		} else {
			f := *patch.Format
			cfg.Format = &f
		}
	}
	c[id] = cfg
}

// ApplyFormatToAll copies the tournament format to every selected category.
func (c CategoryConfigs) ApplyFormatToAll(sel Selection, format string) {
	for _, id := range sel {
		c.Set(id, ConfigPatch{Format: &format})
	}
}

// ApplyCapacityToAll copies the first selected category's capacity to the others.
func (c CategoryConfigs) ApplyCapacityToAll(sel Selection) {
	first, ok := sel.Default()
	if !ok {
		return
	}
	capacity := c[first].CapacityTeams
	for _, id := range sel[1:] {
		c.Set(id, ConfigPatch{CapacityTeams: &capacity})
	}
}

// Reconcile returns a map whose key set equals sel. Existing entries are kept,
// new categories start with empty capacity and no format override.
func (c CategoryConfigs) Reconcile(sel Selection) CategoryConfigs {
	out := make(CategoryConfigs, len(sel))
	for _, id := range sel {
		if cfg, ok := c[id]; ok {
			out[id] = cfg
			continue
		}
		out[id] = CategoryConfig{}
	}
	return out
}

// FormatFor returns the effective format of a category.
func (c CategoryConfigs) FormatFor(id int64, tournamentFormat string) string {
	if cfg, ok := c[id]; ok && cfg.Format != nil && *cfg.Format != "" {
		return *cfg.Format
	}
	return tournamentFormat
}

func (c CategoryConfigs) clone() CategoryConfigs {
	out := make(CategoryConfigs, len(c))
	for id, cfg := range c {
		if cfg.Format != nil {
			f := *cfg.Format
			cfg.Format = &f
		}
		out[id] = cfg
	}
	return out
}
