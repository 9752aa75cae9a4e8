package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sigilhq/sigil/internal/config"
	"github.com/sigilhq/sigil/internal/constants"
	"github.com/sigilhq/sigil/internal/crypto"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/tui"
)

// terminalCheck is a package-level variable to allow mocking in tests.
var terminalCheck = isTerminal //nolint:gochecknoglobals // Test injection point

// isTerminal reports whether stdin is attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// textKeygenFlags holds the flags for the text keygen command.
type textKeygenFlags struct {
	algorithm string
	dir       string
	force     bool
}

// keygenResult is the JSON payload for a successful key generation.
type keygenResult struct {
	Algorithm string   `json:"algorithm"`
	Files     []string `json:"files"`
}

// newTextKeygenCmd creates the text keygen command.
func newTextKeygenCmd() *cobra.Command {
	flags := &textKeygenFlags{}

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signing key",
		Long: `Generate fresh key material for a signing algorithm.

For blake3, a single shared key file (blake3.txt) is written. For
ed25519, a secret key (ed25519.sk) and a public key (ed25519.pk) are
written as separate files so the public half can be distributed on
its own.

Files are written to the configured keys directory unless --dir is
given, with permissions restricted to the current user. Existing key
files are never overwritten silently: pass --force, or confirm the
interactive prompt.

Examples:
  sigil text keygen                        # Default algorithm from config
  sigil text keygen -a ed25519             # Generate an ed25519 key pair
  sigil text keygen --dir /tmp/keys --force

Exit codes:
  0: Success
  1: General error (IO, existing key files declined)
  2: Invalid input (unknown algorithm)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runTextKeygen(cmd.Context(), cmd, cmd.OutOrStdout(), flags)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.algorithm, "algorithm", "a", "", "signing algorithm (blake3 or ed25519)")
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "directory to write key files into")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing key files without confirmation")

	return cmd
}

// runTextKeygen executes the text keygen command.
func runTextKeygen(ctx context.Context, cmd *cobra.Command, w io.Writer, flags *textKeygenFlags) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)
	logger := GetLogger()

	cfg, err := config.Load(ctx)
	if err != nil {
		return outputCommandError(w, outputFormat, "text keygen", err)
	}

	alg, err := resolveTextAlgorithm(cfg, flags.algorithm)
	if err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	dir := flags.dir
	if dir == "" {
		dir, err = cfg.Text.ResolveKeysDir()
		if err != nil {
			return outputCommandError(w, outputFormat, "text keygen", err)
		}
	}

	names, err := crypto.KeyFileNames(alg)
	if err != nil {
		return outputCommandError(w, outputFormat, "text keygen", err)
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}

	if err := confirmKeyOverwrite(w, outputFormat, paths, flags.force); err != nil {
		return err
	}

	logger.Debug().
		Str("algorithm", alg.String()).
		Str("dir", dir).
		Msg("generating key material")

	buffers, err := crypto.GenerateKeys(alg)
	if err != nil {
		return outputCommandError(w, outputFormat, "text keygen", err)
	}

	if err := os.MkdirAll(dir, constants.DirMode); err != nil {
		return outputCommandError(w, outputFormat, "text keygen",
			sigilerrors.Wrapf(err, "failed to create keys directory %q", dir))
	}

	for i, buf := range buffers {
		if err := os.WriteFile(paths[i], buf, constants.KeyFileMode); err != nil {
			return outputCommandError(w, outputFormat, "text keygen",
				sigilerrors.Wrapf(err, "failed to write key file %q", paths[i]))
		}
	}

	if outputFormat == OutputJSON {
		return out.JSON(keygenResult{Algorithm: alg.String(), Files: paths})
	}

	out.Success(fmt.Sprintf("Generated %s key", alg))
	for _, path := range paths {
		out.Info("  " + path)
	}
	return nil
}

// confirmKeyOverwrite guards against clobbering existing key files. With
// --force it is a no-op. Otherwise existing files require an interactive
// confirmation; without a terminal the command fails instead of hanging.
func confirmKeyOverwrite(w io.Writer, outputFormat string, paths []string, force bool) error {
	var existing []string
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 || force {
		return nil
	}

	if !terminalCheck() {
		return outputCommandError(w, outputFormat, "text keygen",
			sigilerrors.Wrapf(sigilerrors.ErrKeyFileExists, "%s", strings.Join(existing, ", ")))
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite existing key files?").
				Description(strings.Join(existing, "\n") + "\n\nThe old key material cannot be recovered.").
				Affirmative("Yes, overwrite").
				Negative("No, cancel").
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !confirm {
		return sigilerrors.ErrOperationCanceled
	}
	return nil
}
