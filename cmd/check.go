package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/agegate/internal/activity"
	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
	"github.com/twiced-technology-gmbh/agegate/internal/clierr"
	"github.com/twiced-technology-gmbh/agegate/internal/output"
	"github.com/twiced-technology-gmbh/agegate/internal/page"
)

// maxStdinInput bounds how much of stdin is read as a date.
const maxStdinInput = 256

var checkCmd = &cobra.Command{
	Use:   "check [DATE]",
	Short: "Check a birth date without the TUI",
	Long: `Types DATE into a birth date field key by key, presses continue and prints
the outcome. DATE is read from stdin when omitted and stdin is not a terminal.

Exit codes: 0 accepted, 1 invalid date or too young, 2 internal error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("min-age", 0, "override the configured minimum age")
	checkCmd.Flags().Bool("no-log", false, "do not record the outcome in the activity log")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("min-age") {
		cfg.Field.MinAge, _ = cmd.Flags().GetInt("min-age")
		if err := cfg.Validate(); err != nil {
			return clierr.New(clierr.InvalidInput, err.Error())
		}
	}

	input, err := readInput(args, os.Stdin, term.IsTerminal(int(os.Stdin.Fd())))
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	var rep birthdate.Reporter
	if noLog, _ := cmd.Flags().GetBool("no-log"); !noLog {
		rep = activity.NewRecorder(cfg.Dir(), nil)
	}

	res, err := page.Check(cfg.BirthDate(), input, rep, birthdate.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("checking date: %w", err)
	}
	return reportCheck(os.Stdout, os.Stderr, res, cfg.Field.MinAge)
}

// readInput returns the date to check from the arguments or, when there are
// none, from a non-terminal stdin.
func readInput(args []string, stdin io.Reader, isTerminal bool) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if isTerminal {
		return "", clierr.New(clierr.InvalidInput, "no date given (pass DATE or pipe it on stdin)")
	}
	data, err := io.ReadAll(io.LimitReader(stdin, maxStdinInput))
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// reportCheck prints the result. Anything but an accepted date becomes an
// error so the exit code reflects it.
func reportCheck(stdout, stderr io.Writer, res page.Result, minAge int) error {
	jsonMode := outputFormat() == output.FormatJSON

	if res.Blocked() {
		if jsonMode {
			details := map[string]any{}
			if part := res.Part.String(); part != "" {
				details["part"] = part
			}
			return clierr.New(clierr.InvalidDate, res.Message).WithDetails(details)
		}
		output.Invalid(stderr, res.Part.String(), res.Message)
		return &clierr.SilentError{Code: 1}
	}

	o := *res.Outcome
	if jsonMode {
		if !o.Accepted {
			return clierr.New(clierr.AgeRequirementNotMet, o.Message).WithDetails(map[string]any{
				"age":     o.Age,
				"min_age": minAge,
				"session": o.Session,
			})
		}
		return output.JSON(stdout, o)
	}

	output.Outcome(stdout, o)
	if !o.Accepted {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
