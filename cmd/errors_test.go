package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Duratori/nvcheck/internal/installer"
	"github.com/Duratori/nvcheck/internal/release"
	"github.com/Duratori/nvcheck/tui"
	"github.com/stretchr/testify/assert"
)

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network typed", &release.NetworkError{Err: errors.New("dial tcp")}, "network_error"},
		{"parse typed", &release.ParseError{Body: "<html>"}, "parse_error"},
		{"installation typed", &installer.InstallationError{ExitCode: 1}, "installation_error"},
		{"cancellation", &tui.CancellationError{}, "user_cancelled"},
		{"wrapped network", fmt.Errorf("update check failed: %w", &release.NetworkError{Err: errors.New("timeout")}), "network_error"},
		{"timeout string", errors.New("context deadline exceeded: timeout"), "network_error"},
		{"permission string", errors.New("open /usr/bin: permission denied"), "permission_error"},
		{"download string", errors.New("download driver.run: server returned status 503"), "download_error"},
		{"probe string", errors.New("exec: \"nvidia-smi\": executable file not found"), "probe_error"},
		{"unknown", errors.New("something else"), "unknown_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getErrorType(tt.err))
		})
	}
}
