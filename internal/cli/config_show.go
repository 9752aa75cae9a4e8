package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sigilhq/sigil/internal/config"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/tui"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect sigil configuration",
		Long: `Commands for inspecting sigil configuration.

Configuration is layered; later sources win:
  1. Built-in defaults
  2. Global config (~/.sigil/config.yaml)
  3. Project config (.sigil/config.yaml)
  4. SIGIL_* environment variables

Examples:
  sigil config show    # Show effective config with source annotations
  sigil config path    # Show config and log file locations`,
	}

	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	root.AddCommand(configCmd)
}

// newConfigShowCmd creates the config show command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective sigil configuration with source annotations.

Shows the current configuration values and indicates where each value
comes from:
  - default: Built-in default value
  - global: From ~/.sigil/config.yaml
  - project: From .sigil/config.yaml
  - env: From a SIGIL_* environment variable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runConfigShow(cmd.Context(), cmd, cmd.OutOrStdout())
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Value  any          `json:"value"`
	Source ConfigSource `json:"source"`
}

// AnnotatedConfig represents configuration with source annotations.
type AnnotatedConfig struct {
	Text    map[string]ConfigValueWithSource `json:"text"`
	GenPass map[string]ConfigValueWithSource `json:"genpass"`
	CSV     map[string]ConfigValueWithSource `json:"csv"`
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)

	cfg, err := config.Load(ctx)
	if err != nil {
		return outputCommandError(w, outputFormat, "config show", err)
	}

	annotated := buildAnnotatedConfig(cfg)

	if outputFormat == OutputJSON {
		return out.JSON(annotated)
	}

	renderAnnotatedConfig(w, annotated)
	return nil
}

// buildAnnotatedConfig creates an annotated configuration with source information.
func buildAnnotatedConfig(cfg *config.Config) *AnnotatedConfig {
	globalVals := loadConfigValues(globalConfigPathOrEmpty())
	projectVals := loadConfigValues(config.ProjectConfigPath())

	annotated := &AnnotatedConfig{
		Text:    make(map[string]ConfigValueWithSource),
		GenPass: make(map[string]ConfigValueWithSource),
		CSV:     make(map[string]ConfigValueWithSource),
	}

	annotated.Text["algorithm"] = determineSource("text.algorithm", cfg.Text.Algorithm, globalVals, projectVals)
	annotated.Text["keys_dir"] = determineSource("text.keys_dir", cfg.Text.KeysDir, globalVals, projectVals)

	annotated.GenPass["length"] = determineSource("genpass.length", cfg.GenPass.Length, globalVals, projectVals)
	annotated.GenPass["uppercase"] = determineSource("genpass.uppercase", cfg.GenPass.Uppercase, globalVals, projectVals)
	annotated.GenPass["lowercase"] = determineSource("genpass.lowercase", cfg.GenPass.Lowercase, globalVals, projectVals)
	annotated.GenPass["numbers"] = determineSource("genpass.numbers", cfg.GenPass.Numbers, globalVals, projectVals)
	annotated.GenPass["symbols"] = determineSource("genpass.symbols", cfg.GenPass.Symbols, globalVals, projectVals)

	annotated.CSV["format"] = determineSource("csv.format", cfg.CSV.Format, globalVals, projectVals)
	annotated.CSV["delimiter"] = determineSource("csv.delimiter", cfg.CSV.Delimiter, globalVals, projectVals)

	return annotated
}

// globalConfigPathOrEmpty resolves the global config path, returning an
// empty string when the home directory cannot be determined.
func globalConfigPathOrEmpty() string {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return ""
	}
	return path
}

// configValues maps dotted config keys to their raw file values.
type configValues map[string]any

// loadConfigValues parses a YAML config file into dotted keys for source
// comparison. Missing or unreadable files yield nil, which reads as "no
// keys set at this layer".
func loadConfigValues(path string) configValues {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // Config file path
	if err != nil {
		return nil
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil
	}

	result := make(configValues)
	flattenConfigValues("", parsed, result)
	return result
}

// flattenConfigValues walks nested YAML maps and records leaf values under
// dotted keys ("text.algorithm").
func flattenConfigValues(prefix string, value any, out configValues) {
	m, ok := value.(map[string]any)
	if !ok {
		out[prefix] = value
		return
	}
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		flattenConfigValues(key, v, out)
	}
}

// determineSource determines where a configuration value came from.
func determineSource(key string, value any, globalVals, projectVals configValues) ConfigValueWithSource {
	// Env wins over files
	envKey := "SIGIL_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if envVal := os.Getenv(envKey); envVal != "" {
		return ConfigValueWithSource{Value: value, Source: SourceEnv}
	}

	if projectVals != nil {
		if _, exists := projectVals[key]; exists {
			return ConfigValueWithSource{Value: value, Source: SourceProject}
		}
	}

	if globalVals != nil {
		if _, exists := globalVals[key]; exists {
			return ConfigValueWithSource{Value: value, Source: SourceGlobal}
		}
	}

	return ConfigValueWithSource{Value: value, Source: SourceDefault}
}

// configShowStyles contains styling for the config show command output.
type configShowStyles struct {
	header    lipgloss.Style
	section   lipgloss.Style
	key       lipgloss.Style
	sourceEnv lipgloss.Style
	sourcePrj lipgloss.Style
	sourceGbl lipgloss.Style
	sourceDef lipgloss.Style
	dim       lipgloss.Style
}

// newConfigShowStyles creates styles for config show command output.
func newConfigShowStyles() *configShowStyles {
	return &configShowStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary),
		section:   lipgloss.NewStyle().Bold(true),
		key:       lipgloss.NewStyle().Foreground(tui.ColorPrimary),
		sourceEnv: lipgloss.NewStyle().Foreground(tui.ColorError),
		sourcePrj: lipgloss.NewStyle().Foreground(tui.ColorWarning),
		sourceGbl: lipgloss.NewStyle().Foreground(tui.ColorSuccess),
		sourceDef: lipgloss.NewStyle().Foreground(tui.ColorMuted),
		dim:       lipgloss.NewStyle().Foreground(tui.ColorMuted),
	}
}

// renderAnnotatedConfig writes the annotated configuration as styled text.
func renderAnnotatedConfig(w io.Writer, annotated *AnnotatedConfig) {
	styles := newConfigShowStyles()

	_, _ = fmt.Fprintln(w, styles.header.Render("Effective sigil configuration"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("Sources: ")+
		styles.sourceEnv.Render("env")+" > "+
		styles.sourcePrj.Render("project")+" > "+
		styles.sourceGbl.Render("global")+" > "+
		styles.sourceDef.Render("default"))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("text:"))
	printConfigValue(w, styles, "  algorithm", annotated.Text["algorithm"])
	printConfigValue(w, styles, "  keys_dir", annotated.Text["keys_dir"])
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("genpass:"))
	printConfigValue(w, styles, "  length", annotated.GenPass["length"])
	printConfigValue(w, styles, "  uppercase", annotated.GenPass["uppercase"])
	printConfigValue(w, styles, "  lowercase", annotated.GenPass["lowercase"])
	printConfigValue(w, styles, "  numbers", annotated.GenPass["numbers"])
	printConfigValue(w, styles, "  symbols", annotated.GenPass["symbols"])
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.section.Render("csv:"))
	printConfigValue(w, styles, "  format", annotated.CSV["format"])
	printConfigValue(w, styles, "  delimiter", annotated.CSV["delimiter"])
	_, _ = fmt.Fprintln(w)

	renderConfigLocations(w, styles)
}

// printConfigValue prints a configuration value with its source annotation.
func printConfigValue(w io.Writer, styles *configShowStyles, key string, vs ConfigValueWithSource) {
	sourceStyle := styles.sourceDef
	switch vs.Source {
	case SourceEnv:
		sourceStyle = styles.sourceEnv
	case SourceProject:
		sourceStyle = styles.sourcePrj
	case SourceGlobal:
		sourceStyle = styles.sourceGbl
	case SourceDefault:
		sourceStyle = styles.sourceDef
	}

	_, _ = fmt.Fprintf(w, "%s: %s  %s\n",
		styles.key.Render(key),
		formatConfigValue(vs.Value),
		sourceStyle.Render("# "+string(vs.Source)))
}

// formatConfigValue converts a configuration value to a displayable string.
func formatConfigValue(value any) string {
	if s, ok := value.(string); ok {
		if s == "" {
			return "(not set)"
		}
		return s
	}
	return fmt.Sprintf("%v", value)
}

// renderConfigLocations writes the config file locations, marking files
// that do not exist.
func renderConfigLocations(w io.Writer, styles *configShowStyles) {
	_, _ = fmt.Fprintln(w, styles.dim.Render("Configuration files:"))

	if globalPath := globalConfigPathOrEmpty(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			_, _ = fmt.Fprintln(w, styles.dim.Render("  Global: ")+styles.sourceGbl.Render(globalPath))
		} else {
			_, _ = fmt.Fprintln(w, styles.dim.Render("  Global: "+globalPath+" (not found)"))
		}
	}

	projectPath := config.ProjectConfigPath()
	if _, err := os.Stat(projectPath); err == nil {
		absPath, _ := filepath.Abs(projectPath)
		_, _ = fmt.Fprintln(w, styles.dim.Render("  Project: ")+styles.sourcePrj.Render(absPath))
	} else {
		_, _ = fmt.Fprintln(w, styles.dim.Render("  Project: "+projectPath+" (not found)"))
	}
}
