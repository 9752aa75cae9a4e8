package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/sigilhq/sigil/internal/config"
	"github.com/sigilhq/sigil/internal/constants"
	"github.com/sigilhq/sigil/internal/convert"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/input"
	"github.com/sigilhq/sigil/internal/tui"
)

// csvFlags holds the flags for the csv command.
type csvFlags struct {
	format    string
	delimiter string
	file      string
}

// csvResult is the JSON payload for a successful conversion.
type csvResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Format string `json:"format"`
}

// AddCSVCommand adds the csv command to the root command.
func AddCSVCommand(root *cobra.Command) {
	flags := &csvFlags{}

	cmd := &cobra.Command{
		Use:   "csv [input]",
		Short: "Convert CSV input to JSON or YAML",
		Long: `Convert CSV input into a structured output file.

The first row is treated as a header; every following row becomes a
record keyed by those headers. Rows with a different field count than
the header are rejected.

The input argument is a file path, or "-" for stdin. When omitted,
stdin is read. The result is written to --file, which defaults to
output.json or output.yaml next to the current directory.

Examples:
  sigil csv data.csv                       # Writes output.json
  sigil csv -f yaml data.csv               # Writes output.yaml
  sigil csv --file records.json data.csv   # Explicit destination
  sigil csv -d ';' data.csv                # Semicolon-delimited input

Exit codes:
  0: Success
  1: General error (IO, malformed CSV)
  2: Invalid input (unknown format, bad delimiter, missing input file)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCSV(cmd.Context(), cmd, cmd.OutOrStdout(), args, flags)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format (json or yaml, default from config)")
	cmd.Flags().StringVarP(&flags.delimiter, "delimiter", "d", "", "CSV field delimiter (default from config, \",\")")
	cmd.Flags().StringVar(&flags.file, "file", "", "output file path (default output.<format>)")

	root.AddCommand(cmd)
}

// runCSV executes the csv command.
func runCSV(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string, flags *csvFlags) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)
	logger := GetLogger()

	cfg, err := config.Load(ctx)
	if err != nil {
		return outputCommandError(w, outputFormat, "csv", err)
	}

	format, err := resolveCSVFormat(cfg, flags.format)
	if err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	delimiter, err := resolveCSVDelimiter(cfg, flags.delimiter)
	if err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	outPath := flags.file
	if outPath == "" {
		outPath = cfg.CSV.DefaultOutputPath(format.String())
	}

	inputName := inputArg(args)
	if err := input.Validate(inputName); err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	r, err := input.Open(inputName)
	if err != nil {
		return outputCommandError(w, outputFormat, "csv", err)
	}
	defer func() { _ = r.Close() }()

	logger.Debug().
		Str("input", inputName).
		Str("output", outPath).
		Str("format", format.String()).
		Msg("converting csv")

	data, err := convert.CSV(r, convert.Options{Format: format, Delimiter: delimiter})
	if err != nil {
		return outputCommandError(w, outputFormat, "csv", err)
	}

	if err := os.WriteFile(outPath, data, constants.OutputFileMode); err != nil {
		return outputCommandError(w, outputFormat, "csv",
			sigilerrors.Wrapf(err, "failed to write output file %q", outPath))
	}

	if outputFormat == OutputJSON {
		return out.JSON(csvResult{Input: inputName, Output: outPath, Format: format.String()})
	}

	out.Success(fmt.Sprintf("Converted %s to %s", inputName, outPath))
	return nil
}

// resolveCSVFormat picks the output format from the flag value, falling
// back to the configured default when the flag is empty.
func resolveCSVFormat(cfg *config.Config, flagValue string) (convert.Format, error) {
	if flagValue != "" {
		return convert.ParseFormat(flagValue)
	}
	return convert.ParseFormat(cfg.CSV.Format)
}

// resolveCSVDelimiter picks the field delimiter from the flag value,
// falling back to the configured default. The delimiter must be exactly
// one character.
func resolveCSVDelimiter(cfg *config.Config, flagValue string) (rune, error) {
	value := flagValue
	if value == "" {
		value = cfg.CSV.Delimiter
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, sigilerrors.Wrapf(sigilerrors.ErrInvalidArgument, "delimiter %q must be a single character", value)
	}
	delimiter, _ := utf8.DecodeRuneInString(value)
	return delimiter, nil
}
