package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Duratori/nvcheck/internal/installer"
	"github.com/Duratori/nvcheck/internal/nvversion"
	"github.com/Duratori/nvcheck/internal/release"
	"github.com/Duratori/nvcheck/internal/smi"
	"github.com/Duratori/nvcheck/tui"
	tea "github.com/charmbracelet/bubbletea"
)

const manualDownloadURL = "https://www.nvidia.com/Download/index.aspx"

// Collaborator seams for the check flow, swapped in tests so no test touches
// hardware, the network or sudo.
var (
	probeDriver        = smi.Query
	checkLatestRelease = fetchLatestWithSpinner
	downloadInstaller  = downloadWithProgress
	installDriver      = installer.Install
	confirmPrompt      = tui.Confirm
	makeDownloadDir    = func() (string, error) { return os.MkdirTemp("", "nvcheck-*") }
)

type checkOptions struct {
	SkipUpdateCheck bool
	KeepDownload    bool
}

// runCheck is the whole program: probe, report, compare, and (on consent)
// download and install. It returns the process exit code: 0 when a working
// driver is present or was just installed, 1 otherwise.
func runCheck(ctx context.Context, opts checkOptions) int {
	status := probeDriver(ctx)
	fmt.Println(tui.RenderReport(status))

	// The exit code when the update flow goes no further than the report.
	reportCode := 0
	if !status.Installed {
		reportCode = 1
	}

	if opts.SkipUpdateCheck {
		return reportCode
	}

	info, err := checkLatestRelease(ctx)
	if err != nil {
		CaptureCommandError(rootCmd, err)
		PrintWarning(err.Error())
		PrintInfo("Please check manually at: " + manualDownloadURL)
		return reportCode
	}

	if status.Installed {
		fmt.Println(tui.RenderVersionComparison(status.Version, info.LatestVersion))
		fmt.Println()

		switch nvversion.Compare(status.Version, info.LatestVersion) {
		case nvversion.UpToDate:
			fmt.Println(tui.RenderUpToDate(status.Version))
			return 0
		case nvversion.Unknown:
			PrintWarningSimple(fmt.Sprintf("Cannot compare driver versions %q and %q", status.Version, info.LatestVersion))
			return 0
		case nvversion.UpdateAvailable:
			fmt.Println(tui.RenderUpdateAvailable(status.Version, info.LatestVersion))
		}
	} else {
		PrintInfo(fmt.Sprintf("Latest available driver version: %s", info.LatestVersion))
	}

	return runUpdateFlow(ctx, info, opts.KeepDownload, reportCode)
}

// runUpdateFlow walks the linear download/install sequence. Every failure or
// decline is terminal. declineCode is the exit code when the user backs out
// or a best-effort step fails: 0 when a driver is already present, 1 when not.
func runUpdateFlow(ctx context.Context, info release.Info, keepDownload bool, declineCode int) int {
	confirmed, err := confirmPrompt(fmt.Sprintf("Download driver %s now?", info.LatestVersion))
	if err != nil {
		PrintInfo("Update cancelled.")
		return declineCode
	}
	if !confirmed {
		PrintInfo("Update cancelled. To update manually, visit: " + manualDownloadURL)
		return declineCode
	}

	downloadDir, err := makeDownloadDir()
	if err != nil {
		CaptureCommandError(rootCmd, err)
		PrintError(fmt.Errorf("create download directory: %w", err))
		return 1
	}
	keepFile := false
	defer func() {
		if !keepFile {
			os.RemoveAll(downloadDir)
		}
	}()

	installerPath := filepath.Join(downloadDir, release.InstallerFileName(info.LatestVersion))
	if err := downloadInstaller(ctx, info.DownloadURL, installerPath); err != nil {
		CaptureCommandError(rootCmd, err)
		PrintError(err)
		PrintInfo("Download failed. Please try manually: " + manualDownloadURL)
		return declineCode
	}
	PrintSuccessSimple("Downloaded " + filepath.Base(installerPath))

	PrintWarningSimple("Driver installation requires root privileges and will run: sudo " + installerPath)
	confirmed, err = confirmPrompt("Proceed with installation?")
	if err != nil || !confirmed {
		if keepDownload {
			keepFile = true
			PrintInfo("Installation skipped. The installer was kept at: " + installerPath)
		} else {
			PrintInfo("Installation cancelled. The downloaded installer was removed.")
		}
		return declineCode
	}

	PrintInfo("Starting driver installation. This may require the X server to be stopped.")
	if err := installDriver(ctx, installerPath); err != nil {
		CaptureCommandError(rootCmd, err)
		PrintError(err)
		return 1
	}

	PrintSuccessSimple("Driver installation completed successfully!")
	PrintWarningSimple("A reboot is typically required for the new driver to load.")
	return 0
}

// fetchLatestWithSpinner wraps the release fetch in a busy spinner.
func fetchLatestWithSpinner(ctx context.Context) (release.Info, error) {
	busy := tui.NewBusyModel("Checking for the latest NVIDIA driver...")
	p := tea.NewProgram(busy)
	done := make(chan struct{})
	go func() {
		_, _ = p.Run()
		close(done)
	}()

	info, err := release.FetchLatest(ctx)

	p.Send(tui.BusyDoneMsg{})
	tui.ShutdownProgram(p, done, os.Stdout)

	return info, err
}

// downloadWithProgress streams the installer while a progress view renders
// percentage (or byte count when the size is unknown).
func downloadWithProgress(ctx context.Context, url, dest string) error {
	model := tui.NewDownloadModel(filepath.Base(dest))
	p := tea.NewProgram(model)
	done := make(chan struct{})
	go func() {
		_, _ = p.Run()
		close(done)
	}()

	err := installer.Download(ctx, url, dest, func(downloaded, total int64) {
		p.Send(tui.DownloadProgressMsg{Downloaded: downloaded, Total: total})
	})

	p.Send(tui.DownloadDoneMsg{Err: err})
	tui.ShutdownProgram(p, done, os.Stdout)

	return err
}
