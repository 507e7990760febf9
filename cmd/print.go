package cmd

import (
	"fmt"
	"os"

	"github.com/Duratori/nvcheck/tui"
)

func PrintError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.RenderError(err))
	}
}

func PrintWarning(message string) {
	if message != "" {
		fmt.Println(tui.RenderWarning(message))
	}
}

func PrintWarningSimple(message string) {
	if message != "" {
		fmt.Println(tui.RenderWarningSimple(message))
	}
}

func PrintSuccessSimple(message string) {
	if message != "" {
		fmt.Println(tui.RenderSuccessSimple(message))
	}
}

func PrintInfo(message string) {
	if message != "" {
		fmt.Println(tui.RenderInfo(message))
	}
}
