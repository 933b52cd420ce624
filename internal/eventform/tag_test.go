package eventform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DukeRupert/courtside/internal/domain"
)

func TestCategoryTag(t *testing.T) {
	tests := []struct {
		name     string
		category domain.PadelCategory
		want     string
	}{
		{"female with min level", domain.PadelCategory{GenderRestriction: domain.GenderFemale, MinLevel: "4"}, "F4"},
		{"lowercase gender", domain.PadelCategory{GenderRestriction: "female", MinLevel: "4"}, "F4"},
		{"male falls back to max level", domain.PadelCategory{GenderRestriction: domain.GenderMale, MaxLevel: "5"}, "M5"},
		{"min level wins over max level", domain.PadelCategory{GenderRestriction: domain.GenderMale, MinLevel: "3", MaxLevel: "5"}, "M3"},
		{"unset gender, level from label", domain.PadelCategory{Label: "Categoria 3"}, "MX3"},
		{"decimal level in label", domain.PadelCategory{GenderRestriction: domain.GenderMixed, Label: "Nível 2,5"}, "MX2,5"},
		{"no number uses raw label", domain.PadelCategory{Label: "Open"}, "MXOpen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryTag(tt.category))
		})
	}
}

func TestCatalog_TaggedName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		id   int64
		want string
	}{
		{"plain name", "Inscrição", 1, "Inscrição · F4"},
		{"replaces existing tag", "Inscrição · F4", 3, "Inscrição · M5"},
		{"idempotent", "Inscrição · F4", 1, "Inscrição · F4"},
		{"trims", "  Dupla  ", 2, "Dupla · MX3"},
		{"empty stays empty", "", 1, ""},
		{"keeps organizer separator", "VIP · Early", 1, "VIP · Early · F4"},
		{"retags organizer separator", "VIP · Early · F4", 3, "VIP · Early · M5"},
		{"unknown category tag", "Dupla · MX99", 99, "Dupla · MX99"},
	}

	cat := testCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cat.TaggedName(tt.in, tt.id))
		})
	}
}

func TestCatalog_BaseName(t *testing.T) {
	cat := testCatalog()

	assert.Equal(t, "Inscrição", cat.BaseName("Inscrição · MX3"))
	assert.Equal(t, "VIP · Early", cat.BaseName("VIP · Early"))
	assert.Equal(t, "Plateia", cat.BaseName(" Plateia "))
}

func TestCatalog(t *testing.T) {
	cat := testCatalog()

	assert.Equal(t, "F4", cat.Tag(1))
	assert.Equal(t, "MX3", cat.Tag(2))
	assert.Equal(t, "MX99", cat.Tag(99))
	assert.Equal(t, "Feminino 4", cat.Label(1))
	assert.Equal(t, "MX99", cat.Label(99))
	assert.True(t, HasTag("Inscrição · F4", "F4"))
	assert.False(t, HasTag("Inscrição F4", "F4"))
}

func testCatalog() Catalog {
	return NewCatalog([]domain.PadelCategory{
		{ID: 1, Label: "Feminino 4", GenderRestriction: domain.GenderFemale, MinLevel: "4"},
		{ID: 2, Label: "Categoria 3"},
		{ID: 3, Label: "Masculino 5", GenderRestriction: domain.GenderMale, MaxLevel: "5"},
	})
}
