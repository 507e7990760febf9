package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/Duratori/nvcheck/internal/smi"
)

const absentPlaceholder = "unknown"

// RenderReport formats a driver status probe for the terminal. Pure
// formatting; absent fields render as a placeholder.
func RenderReport(status smi.Status) string {
	InitCommonStyles(os.Stdout)

	var b strings.Builder
	b.WriteString(PrimaryTitleStyle().Render("NVIDIA Driver Check"))
	b.WriteString("\n")

	if !status.Installed {
		b.WriteString(ErrorStyle().Render("✗ NVIDIA driver not found or nvidia-smi not available"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(SuccessStyle().Render("✓ NVIDIA driver is installed"))
	b.WriteString("\n\n")

	writeField(&b, "Driver Version", orPlaceholder(status.Version))
	writeField(&b, "GPU Name", orPlaceholder(status.GPUName))
	writeField(&b, "CUDA Version", orPlaceholder(status.CUDAVersion))
	writeField(&b, "Memory Total", formatMiB(status.MemoryTotalMiB))
	writeField(&b, "Memory Used", formatMiB(status.MemoryUsedMiB))
	writeField(&b, "Memory Free", formatMiB(status.MemoryFreeMiB))

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle().Render(fmt.Sprintf("  %-16s", label+":")))
	b.WriteString(" ")
	b.WriteString(SubtleTextStyle().Render(value))
	b.WriteString("\n")
}

func orPlaceholder(s string) string {
	if s == "" {
		return absentPlaceholder
	}
	return s
}

func formatMiB(v int) string {
	if v == smi.MemoryAbsent {
		return absentPlaceholder
	}
	return fmt.Sprintf("%d MiB", v)
}

// RenderVersionComparison formats the installed/latest version pair shown
// before the update decision.
func RenderVersionComparison(current, latest string) string {
	InitCommonStyles(os.Stdout)
	return fmt.Sprintf("%s %s\n%s %s",
		LabelStyle().Render("Current version:"),
		PrimaryStyle().Bold(true).Render(current),
		LabelStyle().Render("Latest version: "),
		PrimaryStyle().Bold(true).Render(latest))
}

// RenderUpToDate is shown when no newer driver is published.
func RenderUpToDate(version string) string {
	InitCommonStyles(os.Stdout)
	return SuccessStyle().Render(fmt.Sprintf("✓ Your driver is up to date (%s)", version))
}

// RenderUpdateAvailable is shown when a newer driver is published.
func RenderUpdateAvailable(current, latest string) string {
	InitCommonStyles(os.Stdout)
	return fmt.Sprintf("%s %s %s %s",
		WarningStyle().Render("⚠ A newer driver version is available:"),
		PrimaryStyle().Bold(true).Render(current),
		SubtleTextStyle().Render("→"),
		PrimaryStyle().Bold(true).Render(latest))
}
