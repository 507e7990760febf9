package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Duratori/nvcheck/internal/version"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

func isPMManaged(binPath string) bool {
	return strings.Contains(binPath, "/opt/homebrew/") ||
		strings.Contains(binPath, "/usr/local/Cellar/") ||
		strings.Contains(binPath, "/nix/store/")
}

func userWritable(path string) bool {
	u, err := user.Current()
	if err != nil {
		return false
	}
	return strings.HasPrefix(path, u.HomeDir)
}

func getCurrentBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update nvcheck itself to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("NVCHECK_NO_SELFUPDATE") == "1" {
			fmt.Println("Self-update disabled by NVCHECK_NO_SELFUPDATE=1")
			return nil
		}

		binPath, err := getCurrentBinaryPath()
		if err != nil {
			return err
		}

		if isPMManaged(binPath) {
			fmt.Println("This installation is managed by a package manager; update it there.")
			return nil
		}

		if !userWritable(binPath) {
			return errors.New("install path is not writable by current user; reinstall nvcheck into your home directory")
		}

		currentVersion := version.BuildVersion
		if currentVersion == "dev" || currentVersion == "" {
			fmt.Println("Development build detected. Cannot check for updates.")
			fmt.Println("Please download the latest version manually from https://github.com/Duratori/nvcheck/releases")
			return nil
		}

		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Println("Checking for updates...")

		ctx := cmd.Context()
		slug := selfupdate.ParseSlug("Duratori/nvcheck")

		latest, found, err := selfupdate.DetectLatest(ctx, slug)
		if err != nil {
			return fmt.Errorf("error occurred while detecting version: %w", err)
		}

		if !found {
			return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
		}

		if latest.LessOrEqual(currentVersion) {
			fmt.Printf("Already up to date (version %s)\n", currentVersion)
			return nil
		}

		fmt.Printf("New version available: %s\n", latest.Version())
		fmt.Println("Downloading update...")

		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}

		if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
			return fmt.Errorf("error occurred while updating binary: %w", err)
		}

		fmt.Printf("Successfully updated to version %s\n", latest.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selfUpdateCmd)
}
