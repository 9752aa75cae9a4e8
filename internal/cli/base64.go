package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/input"
	"github.com/sigilhq/sigil/internal/transcode"
	"github.com/sigilhq/sigil/internal/tui"
)

// base64Flags holds the flags shared by the base64 subcommands.
type base64Flags struct {
	format string
}

// base64Result is the JSON payload for a base64 operation.
type base64Result struct {
	Encoding string `json:"encoding"`
	Data     string `json:"data"`
}

// AddBase64Command adds the base64 command group to the root command.
func AddBase64Command(root *cobra.Command) {
	base64Cmd := &cobra.Command{
		Use:   "base64",
		Short: "Encode or decode base64 data",
		Long: `Commands for encoding and decoding base64 data.

Two alphabets are supported:
  standard  The padded RFC 4648 alphabet (the default).
  urlsafe   The URL alphabet without padding, matching the encoding
            sigil uses for signatures.

Input is read from a file argument, or from stdin when the argument
is "-" or omitted.

Examples:
  sigil base64 encode message.txt
  echo -n hello | sigil base64 encode -f urlsafe
  sigil base64 decode encoded.txt`,
	}

	base64Cmd.AddCommand(newBase64EncodeCmd())
	base64Cmd.AddCommand(newBase64DecodeCmd())

	root.AddCommand(base64Cmd)
}

// newBase64EncodeCmd creates the base64 encode command.
func newBase64EncodeCmd() *cobra.Command {
	flags := &base64Flags{}

	cmd := &cobra.Command{
		Use:   "encode [input]",
		Short: "Encode input as base64",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBase64(cmd.Context(), cmd, cmd.OutOrStdout(), args, flags, true)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "standard", "base64 alphabet (standard or urlsafe)")

	return cmd
}

// newBase64DecodeCmd creates the base64 decode command.
func newBase64DecodeCmd() *cobra.Command {
	flags := &base64Flags{}

	cmd := &cobra.Command{
		Use:   "decode [input]",
		Short: "Decode base64 input",
		Long: `Decode base64 text back into its raw bytes.

Surrounding whitespace is ignored, so piped input with a trailing
newline decodes cleanly. The decoded bytes are written to stdout
exactly as they are; no newline is appended.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBase64(cmd.Context(), cmd, cmd.OutOrStdout(), args, flags, false)
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "standard", "base64 alphabet (standard or urlsafe)")

	return cmd
}

// runBase64 executes a base64 encode or decode.
func runBase64(_ context.Context, cmd *cobra.Command, w io.Writer, args []string, flags *base64Flags, encode bool) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)
	logger := GetLogger()

	command := "base64 decode"
	if encode {
		command = "base64 encode"
	}

	enc, err := transcode.ParseEncoding(flags.format)
	if err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	inputName := inputArg(args)
	if err := input.Validate(inputName); err != nil {
		return sigilerrors.NewExitCode2Error(err)
	}

	r, err := input.Open(inputName)
	if err != nil {
		return outputCommandError(w, outputFormat, command, err)
	}
	defer func() { _ = r.Close() }()

	logger.Debug().
		Str("encoding", enc.String()).
		Str("input", inputName).
		Bool("encode", encode).
		Msg("transcoding base64")

	if encode {
		text, err := transcode.Encode(r, enc)
		if err != nil {
			return outputCommandError(w, outputFormat, command, err)
		}
		if outputFormat == OutputJSON {
			return out.JSON(base64Result{Encoding: enc.String(), Data: text})
		}
		_, _ = fmt.Fprintln(w, text)
		return nil
	}

	decoded, err := transcode.Decode(r, enc)
	if err != nil {
		return outputCommandError(w, outputFormat, command, err)
	}
	if outputFormat == OutputJSON {
		return out.JSON(base64Result{Encoding: enc.String(), Data: string(decoded)})
	}

	// Raw bytes, no trailing newline, so binary payloads round-trip.
	_, _ = w.Write(decoded)
	return nil
}
