package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/agegate/internal/clierr"
	"github.com/twiced-technology-gmbh/agegate/internal/config"
	"github.com/twiced-technology-gmbh/agegate/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an agegate config",
	Long:  `Creates a config directory with config.yml, using the defaults unless overridden by flags.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Int("min-age", config.DefaultMinAge, "minimum age in whole years")
	initCmd.Flags().Int("max-age", config.DefaultMaxAge, "oldest plausible age in whole years")
	initCmd.Flags().String("format", config.DefaultFormat, "expected input format (YYYY, MM, DD tokens)")
	initCmd.Flags().String("output-format", config.DefaultOutputFormat, "format of accepted dates")
	initCmd.Flags().String("pattern", config.DefaultPattern, "pattern the complete input must match")
	initCmd.Flags().String("invalid-characters", config.DefaultInvalidCharacters, "pattern of characters stripped while typing")
	initCmd.Flags().String("title", config.DefaultTitle, "heading shown above the field")
	initCmd.Flags().String("help-style", config.DefaultHelpStyle,
		"help screen style ("+strings.Join(config.HelpStyles, ", ")+")")
	// Accept the config file's key spelling too (--min_age).
	initCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.ConfigAlreadyExists, "agegate already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	cfg := config.NewDefault()
	flags := cmd.Flags()
	cfg.Field.MinAge, _ = flags.GetInt("min-age")
	cfg.Field.MaxAge, _ = flags.GetInt("max-age")
	cfg.Field.Format, _ = flags.GetString("format")
	cfg.Field.OutputFormat, _ = flags.GetString("output-format")
	cfg.Field.Pattern, _ = flags.GetString("pattern")
	cfg.Field.InvalidCharacters, _ = flags.GetString("invalid-characters")
	cfg.TUI.Title, _ = flags.GetString("title")
	cfg.TUI.HelpStyle, _ = flags.GetString("help-style")

	if _, err := config.Init(absDir, cfg); err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return clierr.New(clierr.InvalidInput, err.Error())
		}
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "initialized",
			"dir":     absDir,
			"config":  cfg.ConfigPath(),
			"format":  cfg.Field.Format,
			"min_age": cfg.Field.MinAge,
		})
	}

	output.Messagef(os.Stdout, "Initialized agegate in %s", absDir)
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Format:  %s", cfg.Field.Format)
	output.Messagef(os.Stdout, "  Min age: %d", cfg.Field.MinAge)
	return nil
}
