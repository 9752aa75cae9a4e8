package cli

import (
	"github.com/spf13/cobra"
)

// AddTextCommand adds the text command group to the root command.
func AddTextCommand(root *cobra.Command) {
	textCmd := &cobra.Command{
		Use:   "text",
		Short: "Sign and verify text, or generate signing keys",
		Long: `Commands for signing and verifying text input.

Two algorithms are supported:
  blake3   Symmetric BLAKE3 keyed hash. One shared 32-byte key both
           signs and verifies.
  ed25519  Asymmetric Ed25519. A secret key signs; the matching
           public key verifies.

Signatures are printed and accepted as URL-safe base64 without padding.
Input is read from a file argument, or from stdin when the argument
is "-" or omitted.

Examples:
  sigil text keygen -a blake3                  # Generate a key into ~/.sigil/keys
  sigil text sign -k blake3.txt message.txt    # Sign a file
  echo -n hello | sigil text sign -k blake3.txt    # Sign stdin
  sigil text verify -k blake3.txt -s SIGNATURE message.txt`,
	}

	textCmd.AddCommand(newTextSignCmd())
	textCmd.AddCommand(newTextVerifyCmd())
	textCmd.AddCommand(newTextKeygenCmd())

	root.AddCommand(textCmd)
}
