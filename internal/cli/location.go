package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/DukeRupert/courtside/internal/geocode"
)

func locationCmd(opts *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "location",
		Short: "Search venue addresses interactively",
		Long: `Reads one line at a time from stdin. A line is an address query;
"#N" selects the Nth suggestion and prints its details; an empty line clears
the selection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := opts.provider
			if provider == nil {
				if opts.geocoderURL == "" {
					return fmt.Errorf("--geocoder-url or GEOCODER_BASE_URL is required")
				}
				client, err := geocode.NewClient(geocode.Config{
					BaseURL:  opts.geocoderURL,
					APIKey:   opts.geocoderKey,
					Language: opts.lang,
				}, opts.logger)
				if err != nil {
					return err
				}
				provider = client
			}

			session := geocode.NewSession(provider, geocode.SessionOptions{
				Debounce: debounce,
				Logger:   opts.logger,
			})
			return runLocation(cmd, session, cmd.InOrStdin(), cmd.OutOrStdout(), isTerminal(cmd.InOrStdin()))
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", geocode.DefaultDebounce, "Delay before a query is sent")
	return cmd
}

// isTerminal reports whether r is an interactive terminal, in which case a
// prompt is printed before each line.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runLocation(cmd *cobra.Command, session *geocode.Session, in io.Reader, out io.Writer, prompt bool) error {
	ctx := cmd.Context()
	scanner := bufio.NewScanner(in)

	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			session.Clear()
			continue
		case strings.HasPrefix(line, "#"):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "#"))
			suggestions := session.Snapshot().Suggestions
			if err != nil || n < 1 || n > len(suggestions) {
				fmt.Fprintf(out, "no suggestion %s\n", line)
				continue
			}
			session.Resolve(ctx, suggestions[n-1].ProviderID)
		default:
			session.Search(ctx, line)
		}

		session.Wait()
		printSnapshot(out, session.Snapshot(), strings.HasPrefix(line, "#"))
	}
	session.Wait()
	return scanner.Err()
}

func printSnapshot(out io.Writer, snap geocode.Snapshot, details bool) {
	if snap.Err != nil {
		fmt.Fprintln(out, "error:", snap.Err)
		return
	}
	if details {
		if snap.Place == nil {
			fmt.Fprintln(out, "no details")
			return
		}
		p := snap.Place
		fmt.Fprintf(out, "%s\n%s, %s\n", p.Name, p.Address, p.City)
		return
	}
	if len(snap.Suggestions) == 0 {
		fmt.Fprintf(out, "no results for %q\n", snap.Query)
		return
	}
	for i, s := range snap.Suggestions {
		if s.Secondary != "" {
			fmt.Fprintf(out, "%d. %s (%s)\n", i+1, s.Label, s.Secondary)
		} else {
			fmt.Fprintf(out, "%d. %s\n", i+1, s.Label)
		}
	}
}
