package eventform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/DukeRupert/courtside/internal/domain"
)

// TagSeparator joins a ticket's base name and its category suffix.
const TagSeparator = " · "

var levelPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// GenderCode maps a gender restriction to its short code.
func GenderCode(g domain.GenderRestriction) string {
	switch domain.GenderRestriction(strings.ToUpper(string(g))) {
	case domain.GenderMale:
		return "M"
	case domain.GenderFemale:
		return "F"
	default:
		return "MX"
	}
}

// CategoryTag returns the short tag of a category, e.g. "F4" or "MX3".
//
// The level comes from the declared minimum level, then the maximum level, then
// the first number in the label, and finally the raw label.
func CategoryTag(c domain.PadelCategory) string {
	return GenderCode(c.GenderRestriction) + categoryLevel(c)
}

func categoryLevel(c domain.PadelCategory) string {
	if lvl := trim(c.MinLevel); lvl != "" {
		return lvl
	}
	if lvl := trim(c.MaxLevel); lvl != "" {
		return lvl
	}
	label := trim(c.Label)
	if n := levelPattern.FindString(label); n != "" {
		return n
	}
	return label
}

// HasTag reports whether name carries tag as its category suffix.
func HasTag(name, tag string) bool {
	return strings.HasSuffix(trim(name), TagSeparator+tag)
}

// Catalog indexes the organization's categories by id.
type Catalog map[int64]domain.PadelCategory

// NewCatalog builds a Catalog from a category list.
func NewCatalog(categories []domain.PadelCategory) Catalog {
	c := make(Catalog, len(categories))
	for _, cat := range categories {
		c[cat.ID] = cat
	}
	return c
}

// Tag returns the tag of a category. Unknown ids are tagged from the id itself.
func (c Catalog) Tag(id int64) string {
	if cat, ok := c[id]; ok {
		return CategoryTag(cat)
	}
	return CategoryTag(domain.PadelCategory{Label: strconv.FormatInt(id, 10)})
}

// BaseName strips a category suffix from a ticket name. Only a suffix that
// is the tag of a known category counts, so organizer text such as
// "VIP · Early" is kept whole.
func (c Catalog) BaseName(name string) string {
	return c.baseName(name, "")
}

func (c Catalog) baseName(name, tag string) string {
	name = trim(name)
	i := strings.LastIndex(name, TagSeparator)
	if i < 0 {
		return name
	}
	suffix := trim(name[i+len(TagSeparator):])
	if suffix == tag || c.isTag(suffix) {
		return trim(name[:i])
	}
	return name
}

func (c Catalog) isTag(s string) bool {
	for _, cat := range c {
		if CategoryTag(cat) == s {
			return true
		}
	}
	return false
}

// TaggedName re-tags name for category id. An empty base stays empty.
func (c Catalog) TaggedName(name string, id int64) string {
	tag := c.Tag(id)
	base := c.baseName(name, tag)
	if base == "" {
		return ""
	}
	return base + TagSeparator + tag
}

// Label returns the display label of a category.
func (c Catalog) Label(id int64) string {
	if cat, ok := c[id]; ok && trim(cat.Label) != "" {
		return trim(cat.Label)
	}
	return c.Tag(id)
}
