package cli

import (
	stderrors "errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/sigilhq/sigil/internal/config"
	sigilerrors "github.com/sigilhq/sigil/internal/errors"
	"github.com/sigilhq/sigil/internal/tui"
)

// configPaths is the JSON payload for the config path command.
type configPaths struct {
	GlobalConfig  string `json:"global_config"`
	ProjectConfig string `json:"project_config"`
	KeysDir       string `json:"keys_dir"`
	LogFile       string `json:"log_file"`
}

// newConfigPathCmd creates the config path command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Display configuration and log file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runConfigPath(cmd, cmd.OutOrStdout())
			// If JSON error was already output, silence cobra's error printing
			// but still return error for non-zero exit code
			if stderrors.Is(err, sigilerrors.ErrJSONErrorOutput) {
				cmd.SilenceErrors = true
			}
			return err
		},
	}
}

// runConfigPath executes the config path command.
func runConfigPath(cmd *cobra.Command, w io.Writer) error {
	outputFormat := getOutputFormat(cmd)
	out := tui.NewOutput(w, outputFormat)

	globalPath, err := config.GlobalConfigPath()
	if err != nil {
		return outputCommandError(w, outputFormat, "config path", err)
	}

	keysDir, err := config.DefaultKeysDir()
	if err != nil {
		return outputCommandError(w, outputFormat, "config path", err)
	}

	logPath, err := LogFilePath()
	if err != nil {
		return outputCommandError(w, outputFormat, "config path", err)
	}

	paths := configPaths{
		GlobalConfig:  globalPath,
		ProjectConfig: config.ProjectConfigPath(),
		KeysDir:       keysDir,
		LogFile:       logPath,
	}

	if outputFormat == OutputJSON {
		return out.JSON(paths)
	}

	out.Table(
		[]string{"LOCATION", "PATH"},
		[][]string{
			{"Global config", paths.GlobalConfig},
			{"Project config", paths.ProjectConfig},
			{"Keys directory", paths.KeysDir},
			{"Log file", paths.LogFile},
		},
	)
	return nil
}
