package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/sigilhq/sigil/internal/config"
	"github.com/sigilhq/sigil/internal/crypto"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/input"
	"github.com/sigilhq/sigil/internal/tui"
)

// textVerifyFlags holds the flags for the text verify command.
type textVerifyFlags struct {
	algorithm string
	key       string
	signature string
}

// verifyResult is the JSON payload for a verification verdict.
type verifyResult struct {
	Algorithm string `json:"algorithm"`
	Valid     bool   `json:"valid"`
}

// newTextVerifyCmd creates the text verify command.
func newTextVerifyCmd() *cobra.Command {
	flags := &textVerifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify [input]",
		Short: "Verify a signature against input",
		Long: `Verify a signature over input with a BLAKE3 keyed hash or an
Ed25519 public key.

The input argument is a file path, or "-" for stdin. When omitted,
stdin is read. The signature is passed with --sig as URL-safe base64
text; surrounding whitespace is ignored, so a signature pasted with a
trailing newline still verifies.

A signature that does not match is reported as a verification failure
with exit code 1. Malformed base64 or a signature of the wrong length
is an error, not a failed verification.

When --key is omitted, the key is loaded from the configured keys
directory using the default file name for the algorithm
(blake3.txt or ed25519.pk).

Examples:
  sigil text verify -s SIGNATURE message.txt
  sigil text verify -a ed25519 -s SIGNATURE message.txt
  echo -n hello | sigil text verify -k blake3.txt -s SIGNATURE

Exit codes:
  0: Signature is valid
  1: Verification failed or general error
  2: Invalid input (unknown algorithm, missing input file)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTextVerify(cmd.Context(), cmd, cmd.OutOrStdout(), args, flags)
			// The verdict has already been printed (styled message or JSON
			// body); silence cobra's error printing but keep the non-zero
			// exit code.
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) || stderrors.Is(err, sigilerrors.ErrVerificationFailed) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.algorithm, "algorithm", "a", "", "signing algorithm (blake3 or ed25519)")
	cmd.Flags().StringVarP(&flags.key, "key", "k", "", "path to the key file")
	cmd.Flags().StringVarP(&flags.signature, "sig", "s", "", "signature to verify (URL-safe base64)")
	_ = cmd.MarkFlagRequired("sig")

	return cmd
}

// runTextVerify executes the text verify command.
func runTextVerify(ctx context.Context, cmd *cobra.Command, w io.Writer, args []string, flags *textVerifyFlags) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)
	logger := GetLogger()

	cfg, err := config.Load(ctx)
	if err != nil {
		return outputCommandError(w, outputFormat, "text verify", err)
	}

	alg, err := resolveTextAlgorithm(cfg, flags.algorithm)
	if err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	keyPath := flags.key
	if keyPath == "" {
		keyPath, err = defaultKeyPath(cfg, alg, true)
		if err != nil {
			return outputCommandError(w, outputFormat, "text verify", err)
		}
	}

	inputName := inputArg(args)
	if err := input.Validate(inputName); err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	r, err := input.Open(inputName)
	if err != nil {
		return outputCommandError(w, outputFormat, "text verify", err)
	}
	defer func() { _ = r.Close() }()

	logger.Debug().
		Str("algorithm", alg.String()).
		Str("key_path", keyPath).
		Str("input", inputName).
		Msg("verifying signature")

	valid, err := crypto.VerifyText(ctx, r, keyPath, alg, flags.signature)
	if err != nil {
		return outputCommandError(w, outputFormat, "text verify", err)
	}

	if outputFormat == OutputJSON {
		if jsonErr := out.JSON(verifyResult{Algorithm: alg.String(), Valid: valid}); jsonErr != nil {
			return jsonErr
		}
		if !valid {
			return sigilerrors.ErrVerificationFailed
		}
		return nil
	}

	if !valid {
		out.Error(sigilerrors.ErrVerificationFailed)
		return sigilerrors.ErrVerificationFailed
	}

	out.Success("Signature verified")
	return nil
}
