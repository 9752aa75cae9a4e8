package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/nbutton23/zxcvbn-go"
	"github.com/spf13/cobra"

	"github.com/sigilhq/sigil/internal/config"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/genpass"
	"github.com/sigilhq/sigil/internal/tui"
)

// genPassFlags holds the flags for the genpass command.
type genPassFlags struct {
	length      int
	noUppercase bool
	noLowercase bool
	noNumbers   bool
	noSymbols   bool
}

// genPassResult is the JSON payload for a generated password.
type genPassResult struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Strength int    `json:"strength"`
}

// AddGenPassCommand adds the genpass command to the root command.
func AddGenPassCommand(root *cobra.Command) {
	flags := &genPassFlags{}

	cmd := &cobra.Command{
		Use:   "genpass",
		Short: "Generate a random password",
		Long: `Generate a random password from enabled character classes.

All four classes (uppercase, lowercase, numbers, symbols) are enabled
by default; each enabled class contributes at least one character.
Easily confused characters (I, O, l, o, 0) are excluded from the
alphabets. Randomness comes from the operating system CSPRNG, so the
output is also suitable as raw key material.

The password is printed to stdout. An estimated strength score (0-4)
is printed to stderr so it never contaminates piped output.

Examples:
  sigil genpass                        # 16 characters, all classes
  sigil genpass -l 32                  # Longer password
  sigil genpass --no-symbols           # Alphanumeric only
  sigil genpass -o json                # Machine-readable result

Exit codes:
  0: Success
  1: General error
  2: Invalid input (length too small, no classes enabled)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runGenPass(cmd.Context(), cmd, cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&flags.length, "length", "l", 0, "password length (default from config, 16)")
	cmd.Flags().BoolVar(&flags.noUppercase, "no-uppercase", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&flags.noLowercase, "no-lowercase", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&flags.noNumbers, "no-numbers", false, "exclude digits")
	cmd.Flags().BoolVar(&flags.noSymbols, "no-symbols", false, "exclude symbols")

	root.AddCommand(cmd)
}

// runGenPass executes the genpass command.
func runGenPass(ctx context.Context, cmd *cobra.Command, w, errW io.Writer, flags *genPassFlags) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)
	logger := GetLogger()

	cfg, err := config.Load(ctx)
	if err != nil {
		return outputCommandError(w, outputFormat, "genpass", err)
	}

	policy := policyFromConfig(cfg)
	applyGenPassFlags(&policy, flags)
	if err := policy.Validate(); err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	password, err := genpass.Generate(policy)
	if err != nil {
		return outputCommandError(w, outputFormat, "genpass", err)
	}

	strength := zxcvbn.PasswordStrength(password, nil).Score

	logger.Debug().
		Int("length", policy.Length).
		Int("strength", strength).
		Msg("generated password")

	if outputFormat == OutputJSON {
		return out.JSON(genPassResult{Password: password, Length: policy.Length, Strength: strength})
	}

	// Bare password on stdout so the command can be piped; the strength
	// estimate goes to stderr.
	_, _ = fmt.Fprintln(w, password)
	_, _ = fmt.Fprintf(errW, "Estimated strength: %d/4\n", strength)
	return nil
}

// policyFromConfig builds a generation policy from the effective config.
func policyFromConfig(cfg *config.Config) genpass.Policy {
	return genpass.Policy{
		Length:  cfg.GenPass.Length,
		Upper:   cfg.GenPass.Uppercase,
		Lower:   cfg.GenPass.Lowercase,
		Digits:  cfg.GenPass.Numbers,
		Symbols: cfg.GenPass.Symbols,
	}
}

// applyGenPassFlags overlays command flags onto the configured policy.
// The --no-* flags only ever disable a class, so a class disabled in the
// config stays disabled regardless of flags.
func applyGenPassFlags(policy *genpass.Policy, flags *genPassFlags) {
	if flags.length > 0 {
		policy.Length = flags.length
	}
	if flags.noUppercase {
		policy.Upper = false
	}
	if flags.noLowercase {
		policy.Lower = false
	}
	if flags.noNumbers {
		policy.Digits = false
	}
	if flags.noSymbols {
		policy.Symbols = false
	}
}
