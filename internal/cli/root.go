// Package cli implements eventctl, an offline companion to the event
// creation API. It validates form states, prints the payload that would be
// submitted, keeps drafts in a local SQLite file and drives the location
// picker from a terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/draft"
	"github.com/DukeRupert/courtside/internal/eventform"
	"github.com/DukeRupert/courtside/internal/geocode"
)

type options struct {
	outputJSON     bool
	lang           string
	minPrice       float64
	splitThreshold int
	categoriesFile string
	paymentsReady  bool
	emailVerified  bool
	draftsDB       string
	geocoderURL    string
	geocoderKey    string

	// provider overrides the HTTP geocoder in tests.
	provider geocode.Provider
	logger   *slog.Logger
}

// NewRootCmd builds the eventctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	return newRootCmd(opts)
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "eventctl",
		Short:        "Validate and inspect event forms offline",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger == nil {
				opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			}
			if opts.minPrice < 0 {
				return fmt.Errorf("--min-price must not be negative")
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.outputJSON, "json", false, "Output JSON")
	flags.StringVar(&opts.lang, "lang", "pt", "Language of validation messages")
	flags.Float64Var(&opts.minPrice, "min-price", 1.00, "Minimum price of a paid ticket")
	flags.IntVar(&opts.splitThreshold, "split-threshold", 1, "Selected categories above which free tournaments get one ticket per category")
	flags.StringVar(&opts.categoriesFile, "categories", "", "JSON file with the padel categories of the organization")
	flags.BoolVar(&opts.paymentsReady, "payments-ready", true, "Treat the payment gateway as connected")
	flags.BoolVar(&opts.emailVerified, "email-verified", true, "Treat the official email as verified")
	flags.StringVar(&opts.draftsDB, "drafts-db", "", "Draft database (default ~/.config/courtside/drafts.db)")
	flags.StringVar(&opts.geocoderURL, "geocoder-url", os.Getenv("GEOCODER_BASE_URL"), "Geocoder base URL")
	flags.StringVar(&opts.geocoderKey, "geocoder-key", os.Getenv("GEOCODER_API_KEY"), "Geocoder API key")

	cmd.AddCommand(validateCmd(opts))
	cmd.AddCommand(payloadCmd(opts))
	cmd.AddCommand(draftCmd(opts))
	cmd.AddCommand(locationCmd(opts))
	return cmd
}

// Execute runs eventctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) policy() (eventform.Policy, error) {
	p := eventform.DefaultPolicy()
	tag, err := language.Parse(o.lang)
	if err != nil {
		return p, fmt.Errorf("invalid --lang %q: %w", o.lang, err)
	}
	p.Language = tag
	p.MinPaidPrice = o.minPrice
	p.SplitThreshold = o.splitThreshold
	return p, nil
}

func (o *options) readiness() domain.GatewayReadiness {
	return domain.GatewayReadiness{PaymentsReady: o.paymentsReady, EmailVerified: o.emailVerified}
}

func (o *options) catalog() (eventform.Catalog, error) {
	if o.categoriesFile == "" {
		return eventform.NewCatalog(nil), nil
	}
	data, err := os.ReadFile(o.categoriesFile)
	if err != nil {
		return nil, err
	}
	var categories []domain.PadelCategory
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse %s: %w", o.categoriesFile, err)
	}
	return eventform.NewCatalog(categories), nil
}

func (o *options) openDrafts() (*draft.SQLiteStore, error) {
	path := o.draftsDB
	if path == "" {
		var err error
		if path, err = draft.DefaultSQLitePath(); err != nil {
			return nil, err
		}
	}
	return draft.OpenSQLite(path)
}

// readState loads a form state from a file, or stdin when path is "-".
// Quantities and prices may be numbers or strings, as in stored drafts.
func readState(cmd *cobra.Command, path string) (eventform.State, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return eventform.State{}, err
	}
	return draft.Decode(data)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
