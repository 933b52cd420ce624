package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/geocode"
	"github.com/DukeRupert/courtside/internal/geocode/mock"
)

const validForm = `{
  "title": "Summer Party",
  "startsAt": "2026-11-01T20:00",
  "locationName": "Clube Central",
  "locationCity": "Lisboa",
  "tickets": [{"name": "Geral", "price": 10, "totalQuantity": 50}]
}`

const categoriesJSON = `[
  {"id": 1, "label": "Feminino 4", "genderRestriction": "FEMALE", "minLevel": "4"},
  {"id": 2, "label": "Categoria 3"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes eventctl with args and returns stdout.
func run(t *testing.T, opts *options, stdin string, args ...string) (string, error) {
	t.Helper()
	if opts.logger == nil {
		opts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cmd := newRootCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	out, err := run(t, &options{}, "", "validate", "--lang", "en", writeFile(t, "ok.json", validForm))
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	out, err = run(t, &options{}, `{"title": ""}`, "validate", "--lang", "en", "-")
	assert.ErrorIs(t, err, errInvalid)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "title: "), "issues are printed in display order")
}

func TestValidate_JSON(t *testing.T) {
	out, err := run(t, &options{}, `{"title": ""}`, "validate", "--json", "-")
	require.ErrorIs(t, err, errInvalid)

	var resp struct {
		Valid  bool              `json:"valid"`
		Issues []eventform.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, eventform.FieldTitle, resp.Issues[0].Field)
}

func TestValidate_MinPrice(t *testing.T) {
	form := strings.Replace(validForm, `"price": 10`, `"price": "1.50"`, 1)
	path := writeFile(t, "form.json", form)

	_, err := run(t, &options{}, "", "validate", path)
	require.NoError(t, err)

	_, err = run(t, &options{}, "", "validate", "--min-price", "2", path)
	assert.ErrorIs(t, err, errInvalid)
}

func TestPayload_TagsPadelTickets(t *testing.T) {
	form := `{
  "title": "Open",
  "startsAt": "2026-11-01T09:00",
  "locationName": "Clube",
  "locationCity": "Lisboa",
  "preset": "padel",
  "selectedCategoryIds": [2, 1],
  "tickets": [{"name": "Geral", "price": "10"}]
}`
	out, err := run(t, &options{}, form, "payload", "--categories", writeFile(t, "cats.json", categoriesJSON), "-")
	require.NoError(t, err)

	var payload eventform.EventPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Tickets, 2)
	assert.Equal(t, "Geral · MX3", payload.Tickets[0].Name)
	assert.Equal(t, "Geral · F4", payload.Tickets[1].Name)
}

func TestPayload_ForcesFreeWithoutGateway(t *testing.T) {
	out, err := run(t, &options{}, validForm, "payload", "--payments-ready=false", "-")
	require.NoError(t, err)

	var payload eventform.EventPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.True(t, payload.IsFree)
}

func TestDraft_SaveShowClear(t *testing.T) {
	db := filepath.Join(t.TempDir(), "drafts.db")
	form := writeFile(t, "form.json", validForm)

	out, err := run(t, &options{}, "", "draft", "show", "--drafts-db", db)
	require.NoError(t, err)
	var st eventform.State
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Empty(t, st.Title, "default form when nothing is stored")

	_, err = run(t, &options{}, "", "draft", "save", form, "--drafts-db", db)
	require.NoError(t, err)

	out, err = run(t, &options{}, "", "draft", "list", "--drafts-db", db)
	require.NoError(t, err)
	assert.Equal(t, "event-create\n", out)

	out, err = run(t, &options{}, "", "draft", "show", "--drafts-db", db)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "Summer Party", st.Title)
	require.Len(t, st.Tickets, 1)
	assert.Equal(t, "50", st.Tickets[0].TotalQuantity)

	_, err = run(t, &options{}, "", "draft", "clear", "--drafts-db", db)
	require.NoError(t, err)

	out, err = run(t, &options{}, "", "draft", "list", "--json", "--drafts-db", db)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestDraft_RejectsLongName(t *testing.T) {
	_, err := run(t, &options{}, "", "draft", "save", writeFile(t, "f.json", validForm), strings.Repeat("x", 65),
		"--drafts-db", filepath.Join(t.TempDir(), "d.db"))
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	provider := mock.New(
		geocode.Place{ProviderID: "p1", Name: "Clube Central", Address: "Rua A 1", City: "Lisboa"},
		geocode.Place{ProviderID: "p2", Name: "Padel Lisboa", Address: "Av. B 2", City: "Lisboa"},
	)
	stdin := "li\nlisboa\n#2\n#9\n"

	out, err := run(t, &options{provider: provider}, stdin, "location", "--debounce", time.Millisecond.String())
	require.NoError(t, err)

	assert.Contains(t, out, `no results for "li"`)
	assert.Contains(t, out, "1. Clube Central (Rua A 1, Lisboa)")
	assert.Contains(t, out, "2. Padel Lisboa (Av. B 2, Lisboa)")
	assert.Contains(t, out, "Padel Lisboa\nAv. B 2, Lisboa\n")
	assert.Contains(t, out, "no suggestion #9")
	assert.Equal(t, []string{"lisboa"}, provider.AutocompleteCalls)
	assert.Equal(t, []string{"p2"}, provider.DetailsCalls)
}

func TestLocation_RequiresGeocoder(t *testing.T) {
	t.Setenv("GEOCODER_BASE_URL", "")
	_, err := run(t, &options{}, "", "location")
	assert.ErrorContains(t, err, "GEOCODER_BASE_URL")
}
