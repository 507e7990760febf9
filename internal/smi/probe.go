// Package smi probes the local NVIDIA driver through nvidia-smi.
//
// The probe is deliberately forgiving: a missing binary, a hung GPU, a
// non-zero exit or output we cannot parse all collapse into "no driver
// installed" rather than an error, because the caller treats the probe as a
// best-effort snapshot of the machine.
package smi

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const probeTimeout = 5 * time.Second

// MemoryAbsent marks a memory figure nvidia-smi did not report.
const MemoryAbsent = -1

// Status is the result of one probe. Immutable after Query returns.
type Status struct {
	Installed      bool
	Version        string
	GPUName        string
	CUDAVersion    string
	MemoryTotalMiB int
	MemoryUsedMiB  int
	MemoryFreeMiB  int
}

// runQuery executes nvidia-smi for the given query fields and returns its
// stdout. Swapped out in tests.
var runQuery = func(ctx context.Context, fields string) (string, error) {
	cmd := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu="+fields,
		"--format=csv,noheader,nounits")
	out, err := cmd.Output()
	return string(out), err
}

// Query probes the local driver once. It never returns an error; anything
// that prevents a clean read yields Status{Installed: false}.
func Query(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := runQuery(ctx, "driver_version,name,memory.total,memory.used,memory.free")
	if err != nil {
		return Status{}
	}

	status, ok := parseStatusLine(out)
	if !ok {
		return Status{}
	}

	// CUDA version is reported by a separate query; best-effort only.
	if cuda, err := runQuery(ctx, "cuda_version"); err == nil {
		status.CUDAVersion = cleanField(cuda)
	}

	return status
}

func parseStatusLine(out string) (Status, bool) {
	line := strings.TrimSpace(out)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		// Multi-GPU machines report one line per device; the first is enough
		// for a driver-level report since the driver version is host-wide.
		line = line[:i]
	}

	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return Status{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if parts[0] == "" {
		return Status{}, false
	}

	return Status{
		Installed:      true,
		Version:        parts[0],
		GPUName:        parts[1],
		MemoryTotalMiB: parseMiB(parts[2]),
		MemoryUsedMiB:  parseMiB(parts[3]),
		MemoryFreeMiB:  parseMiB(parts[4]),
	}, true
}

// parseMiB handles nvidia-smi memory fields, which are plain integers under
// --format=nounits but "[N/A]" on some virtualized GPUs.
func parseMiB(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return MemoryAbsent
	}
	return n
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "[N/A]") {
		return ""
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
