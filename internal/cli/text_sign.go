package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sigilhq/sigil/internal/config"
	"github.com/sigilhq/sigil/internal/constants"
	"github.com/sigilhq/sigil/internal/crypto"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/input"
	"github.com/sigilhq/sigil/internal/tui"
)

// textSignFlags holds the flags for the text sign command.
type textSignFlags struct {
	algorithm string
	key       string
}

// signResult is the JSON payload for a successful sign.
type signResult struct {
	Algorithm string `json:"algorithm"`
	Signature string `json:"signature"`
}

// newTextSignCmd creates the text sign command.
func newTextSignCmd() *cobra.Command {
	flags := &textSignFlags{}

	cmd := &cobra.Command{
		Use:   "sign [input]",
		Short: "Sign input and print the signature",
		Long: `Sign input with a BLAKE3 keyed hash or an Ed25519 secret key.

The input argument is a file path, or "-" for stdin. When omitted,
stdin is read. The signature is printed to stdout as URL-safe base64
without padding.

When --key is omitted, the key is loaded from the configured keys
directory using the default file name for the algorithm
(blake3.txt or ed25519.sk).

Examples:
  sigil text sign message.txt                     # Default algorithm from config
  sigil text sign -a ed25519 message.txt          # Explicit algorithm
  sigil text sign -k /path/to/key message.txt     # Explicit key file
  echo -n hello | sigil text sign                 # Sign stdin

Exit codes:
  0: Success
  1: General error (IO, malformed key)
  2: Invalid input (unknown algorithm, missing input file)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTextSign(cmd.Context(), cmd, cmd.OutOrStdout(), args, flags)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.algorithm, "algorithm", "a", "", "signing algorithm (blake3 or ed25519)")
	cmd.Flags().StringVarP(&flags.key, "key", "k", "", "path to the key file")

	return cmd
}

// runTextSign executes the text sign command.
func runTextSign(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string, flags *textSignFlags) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)
	logger := GetLogger()

	cfg, err := config.Load(ctx)
	if err != nil {
		return outputCommandError(w, outputFormat, "text sign", err)
	}

	alg, err := resolveTextAlgorithm(cfg, flags.algorithm)
	if err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	keyPath := flags.key
	if keyPath == "" {
		keyPath, err = defaultKeyPath(cfg, alg, false)
		if err != nil {
			return outputCommandError(w, outputFormat, "text sign", err)
		}
	}

	inputName := inputArg(args)
	if err := input.Validate(inputName); err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	r, err := input.Open(inputName)
	if err != nil {
		return outputCommandError(w, outputFormat, "text sign", err)
	}
	defer func() { _ = r.Close() }()

	logger.Debug().
		Str("algorithm", alg.String()).
		Str("key_path", keyPath).
		Str("input", inputName).
		Msg("signing input")

	sigText, err := crypto.SignText(ctx, r, keyPath, alg)
	if err != nil {
		return outputCommandError(w, outputFormat, "text sign", err)
	}

	if outputFormat == OutputJSON {
		return out.JSON(signResult{Algorithm: alg.String(), Signature: sigText})
	}

	// Bare signature on stdout so the command can be piped.
	_, _ = fmt.Fprintln(w, sigText)
	return nil
}

// inputArg returns the input argument, defaulting to stdin when omitted.
func inputArg(args []string) string {
	if len(args) == 0 {
		return input.StdinName
	}
	return args[0]
}

// resolveTextAlgorithm picks the signing algorithm from the flag value,
// falling back to the configured default when the flag is empty.
func resolveTextAlgorithm(cfg *config.Config, flagValue string) (crypto.Algorithm, error) {
	if flagValue != "" {
		return crypto.ParseAlgorithm(flagValue)
	}
	return crypto.ParseAlgorithm(cfg.Text.Algorithm)
}

// defaultKeyPath returns the conventional key file location for alg inside
// the configured keys directory. forVerify selects the public half of an
// asymmetric pair; the symmetric key file serves both directions.
func defaultKeyPath(cfg *config.Config, alg crypto.Algorithm, forVerify bool) (string, error) {
	keysDir, err := cfg.Text.ResolveKeysDir()
	if err != nil {
		return "", err
	}
	if alg == crypto.AlgorithmEd25519 {
		if forVerify {
			return filepath.Join(keysDir, constants.Ed25519PublicFileName), nil
		}
		return filepath.Join(keysDir, constants.Ed25519SecretFileName), nil
	}
	return filepath.Join(keysDir, constants.Blake3KeyFileName), nil
}

// getOutputFormat safely retrieves the output format from the command flags.
// It checks the "output" flag if defined, returning its value or empty
// string if not defined.
func getOutputFormat(cmd *cobra.Command) string {
	if flag := cmd.Flag("output"); flag != nil {
		return flag.Value.String()
	}
	return ""
}

// outputCommandError outputs an error in the appropriate format. In JSON
// mode the error is written as a structured body and ErrJSONErrorOutput is
// returned so the exit code stays non-zero without double-printing.
func outputCommandError(w io.Writer, format, command string, err error) error {
	if format == OutputJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if encErr := encoder.Encode(map[string]any{
			"success": false,
			"command": command,
			"error":   err.Error(),
		}); encErr != nil {
			return fmt.Errorf("failed to encode JSON: %w", encErr)
		}
		return sigilerrors.ErrJSONErrorOutput
	}
	return err
}
