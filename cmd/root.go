package cmd

import (
	"os"

	"github.com/Duratori/nvcheck/internal/version"
	"github.com/Duratori/nvcheck/tui"
	"github.com/spf13/cobra"
)

var (
	skipUpdateCheck bool
	keepDownload    bool
)

// rootCmd runs the full check+update flow when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "nvcheck",
	Short: "Check NVIDIA driver status and updates",
	Long: `nvcheck reports the installed NVIDIA driver version and GPU information,
compares it against the latest driver published on NVIDIA's production
branch, and can download and run the official .run installer.

Downloading and installing always require explicit confirmation; they are
never triggered by flags alone.`,
	Version:       version.BuildVersion,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		CaptureCommandError(rootCmd, err)
		PrintError(err)
		os.Exit(1)
	}
}

func init() {
	tui.InitCommonStyles(os.Stdout)

	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle: runCheck refers back to rootCmd.
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		code := runCheck(cmd.Context(), checkOptions{
			SkipUpdateCheck: skipUpdateCheck,
			KeepDownload:    keepDownload,
		})
		if code != 0 {
			os.Exit(code)
		}
	}

	rootCmd.Flags().BoolVar(&skipUpdateCheck, "skip-update-check", false,
		"only report the installed driver; never contact NVIDIA's servers")
	rootCmd.Flags().BoolVar(&keepDownload, "keep-download", false,
		"keep the downloaded installer when declining the install prompt")

	completionCmd := &cobra.Command{
		Use:   "completion [shell]",
		Short: "Generate the autocompletion script for nvcheck for the specified shell",
		Run: func(cmd *cobra.Command, args []string) {
			_ = rootCmd.GenBashCompletionV2(os.Stdout, true) //nolint:errcheck // completion generation error is non-fatal
		},
	}

	completionCmd.AddCommand(&cobra.Command{
		Use:   "bash",
		Short: "Generate the autocompletion script for bash",
		Run: func(cmd *cobra.Command, args []string) {
			_ = rootCmd.GenBashCompletionV2(os.Stdout, true) //nolint:errcheck // completion generation error is non-fatal
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "zsh",
		Short: "Generate the autocompletion script for zsh",
		Run: func(cmd *cobra.Command, args []string) {
			_ = rootCmd.GenZshCompletion(os.Stdout) //nolint:errcheck // completion generation error is non-fatal
		},
	})

	completionCmd.AddCommand(&cobra.Command{
		Use:   "fish",
		Short: "Generate the autocompletion script for fish",
		Run: func(cmd *cobra.Command, args []string) {
			_ = rootCmd.GenFishCompletion(os.Stdout, true) //nolint:errcheck // completion generation error is non-fatal
		},
	})

	rootCmd.AddCommand(completionCmd)
}
