package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/agegate/internal/clierr"
	"github.com/twiced-technology-gmbh/agegate/internal/config"
	"github.com/twiced-technology-gmbh/agegate/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify the agegate configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func stringAccessor(field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get:      func(c *config.Config) any { return *field(c) },
		set:      func(c *config.Config, v string) error { *field(c) = v; return nil },
		writable: true,
	}
}

func intAccessor(key string, field func(*config.Config) *int) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be an integer", key, v)
			}
			*field(c) = n
			return nil // validation handles range check
		},
		writable: true,
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"field.min_age": intAccessor("field.min_age", func(c *config.Config) *int { return &c.Field.MinAge }),
		"field.max_age": {
			get:      func(c *config.Config) any { return c.MaxAge() },
			set:      intAccessor("field.max_age", func(c *config.Config) *int { return &c.Field.MaxAge }).set,
			writable: true,
		},
		"field.format":             stringAccessor(func(c *config.Config) *string { return &c.Field.Format }),
		"field.output_format":      stringAccessor(func(c *config.Config) *string { return &c.Field.OutputFormat }),
		"field.pattern":            stringAccessor(func(c *config.Config) *string { return &c.Field.Pattern }),
		"field.invalid_characters": stringAccessor(func(c *config.Config) *string { return &c.Field.InvalidCharacters }),
		"tui.title":                stringAccessor(func(c *config.Config) *string { return &c.TUI.Title }),
		"tui.help_style":           stringAccessor(func(c *config.Config) *string { return &c.TUI.HelpStyle }),
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"field.min_age",
		"field.max_age",
		"field.format",
		"field.output_format",
		"field.pattern",
		"field.invalid_characters",
		"tui.title",
		"tui.help_style",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	pairs := make([][2]string, 0, len(accessors))
	for _, key := range allConfigKeys() {
		pairs = append(pairs, [2]string{key, fmt.Sprint(accessors[key].get(cfg))})
	}
	output.KeyValues(os.Stdout, pairs)
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, err := lookupAccessor(args[0])
	if err != nil {
		return err
	}
	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, val)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	val := configAccessors()[key].get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": val})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, val)
	return nil
}

func lookupAccessor(key string) (configAccessor, error) {
	acc, ok := configAccessors()[key]
	if !ok {
		return configAccessor{}, clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	return acc, nil
}

// setConfigValue applies and validates a single key change.
func setConfigValue(cfg *config.Config, key, value string) error {
	acc, err := lookupAccessor(key)
	if err != nil {
		return err
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}
	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	return nil
}
