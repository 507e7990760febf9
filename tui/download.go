package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DownloadProgressMsg carries the running byte count of the installer
// download. Total is -1 when the server did not send a Content-Length.
type DownloadProgressMsg struct {
	Downloaded int64
	Total      int64
}

// DownloadDoneMsg ends the download view.
type DownloadDoneMsg struct {
	Err error
}

type DownloadModel struct {
	fileName   string
	downloaded int64
	total      int64
	bar        progress.Model
	spin       spinner.Model
	done       bool
	Err        error

	styles downloadStyles
}

type downloadStyles struct {
	title lipgloss.Style
	file  lipgloss.Style
	stats lipgloss.Style
}

func NewDownloadModel(fileName string) DownloadModel {
	InitCommonStyles(os.Stdout)
	bar := progress.New(
		progress.WithScaledGradient("#76B900", "#76B900"),
		progress.WithWidth(60),
	)
	return DownloadModel{
		fileName: fileName,
		total:    -1,
		bar:      bar,
		spin:     NewPrimarySpinner(),
		styles: downloadStyles{
			title: PrimaryTitleStyle(),
			file:  PrimaryStyle().Bold(true),
			stats: SubtleTextStyle(),
		},
	}
}

func (m DownloadModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DownloadProgressMsg:
		m.downloaded = msg.Downloaded
		m.total = msg.Total
		return m, nil
	case DownloadDoneMsg:
		m.done = true
		m.Err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DownloadModel) View() string {
	if m.done {
		return ""
	}

	header := fmt.Sprintf("%s %s %s",
		m.spin.View(),
		m.styles.title.Render("Downloading"),
		m.styles.file.Render(m.fileName))

	if m.total > 0 {
		return fmt.Sprintf("%s\n%s %s\n",
			header,
			m.bar.ViewAs(float64(m.downloaded)/float64(m.total)),
			m.styles.stats.Render(fmt.Sprintf("%s / %s", humanBytes(m.downloaded), humanBytes(m.total))))
	}

	// Length unknown: show the byte count only.
	return fmt.Sprintf("%s\n%s\n",
		header,
		m.styles.stats.Render(humanBytes(m.downloaded)+" downloaded"))
}

func humanBytes(n int64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case n >= gib:
		return fmt.Sprintf("%.2f GiB", float64(n)/float64(gib))
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(mib))
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(kib))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
