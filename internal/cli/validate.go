package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/courtside/internal/eventform"
)

// errInvalid reports a form with issues. The issues are already printed.
var errInvalid = errors.New("form has validation issues")

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a form state and list its issues in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(cmd, opts, args[0])
			if err != nil {
				return err
			}

			issues := form.Validate()
			if opts.outputJSON {
				if err := writeJSON(cmd.OutOrStdout(), struct {
					Valid  bool              `json:"valid"`
					Issues []eventform.Issue `json:"issues"`
				}{len(issues) == 0, issues}); err != nil {
					return err
				}
			} else if len(issues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
			} else {
				for _, issue := range issues {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", issue.Field, issue.Message)
				}
			}

			if len(issues) > 0 {
				cmd.SilenceErrors = true
				return errInvalid
			}
			return nil
		},
	}
}

func payloadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "payload FILE",
		Short: "Print the payload a form state would submit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(cmd, opts, args[0])
			if err != nil {
				return err
			}
			if banner := form.Banner(); banner != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", banner.Message)
			}
			return writeJSON(cmd.OutOrStdout(), form.Payload())
		},
	}
}

// loadForm reads a state and reconciles it the way the wizard does,
// including the switch to free mode when the gateway is not ready.
func loadForm(cmd *cobra.Command, opts *options, path string) (*eventform.Form, error) {
	policy, err := opts.policy()
	if err != nil {
		return nil, err
	}
	cat, err := opts.catalog()
	if err != nil {
		return nil, err
	}
	st, err := readState(cmd, path)
	if err != nil {
		return nil, err
	}

	form := eventform.NewFromState(st, cat, policy)
	form.ApplyReadiness(opts.readiness())
	return form, nil
}
