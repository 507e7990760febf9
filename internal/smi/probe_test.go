package smi

import (
	"context"
	"errors"
	"testing"
)

func withQueryOutput(t *testing.T, outputs map[string]string, err error) {
	t.Helper()
	original := runQuery
	t.Cleanup(func() { runQuery = original })

	runQuery = func(ctx context.Context, fields string) (string, error) {
		if err != nil {
			return "", err
		}
		out, ok := outputs[fields]
		if !ok {
			return "", errors.New("unexpected query: " + fields)
		}
		return out, nil
	}
}

func TestQueryParsesWellFormedOutput(t *testing.T) {
	withQueryOutput(t, map[string]string{
		"driver_version,name,memory.total,memory.used,memory.free": "580.105.08, NVIDIA GeForce RTX 4090, 24564, 1295, 23269\n",
		"cuda_version": "13.0\n",
	}, nil)

	status := Query(context.Background())

	if !status.Installed {
		t.Fatal("expected driver to be reported as installed")
	}
	if status.Version != "580.105.08" {
		t.Errorf("version = %q, want 580.105.08", status.Version)
	}
	if status.GPUName != "NVIDIA GeForce RTX 4090" {
		t.Errorf("gpu name = %q", status.GPUName)
	}
	if status.CUDAVersion != "13.0" {
		t.Errorf("cuda version = %q, want 13.0", status.CUDAVersion)
	}
	if status.MemoryTotalMiB != 24564 || status.MemoryUsedMiB != 1295 || status.MemoryFreeMiB != 23269 {
		t.Errorf("memory = %d/%d/%d, want 24564/1295/23269",
			status.MemoryTotalMiB, status.MemoryUsedMiB, status.MemoryFreeMiB)
	}
}

func TestQueryUsesFirstLineOnMultiGPU(t *testing.T) {
	withQueryOutput(t, map[string]string{
		"driver_version,name,memory.total,memory.used,memory.free": "580.105.08, NVIDIA A100, 81920, 0, 81920\n580.105.08, NVIDIA A100, 81920, 512, 81408\n",
		"cuda_version": "13.0\n",
	}, nil)

	status := Query(context.Background())
	if !status.Installed || status.GPUName != "NVIDIA A100" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.MemoryUsedMiB != 0 {
		t.Errorf("memory.used = %d, want 0", status.MemoryUsedMiB)
	}
}

func TestQueryReportsNotInstalledOnCommandFailure(t *testing.T) {
	withQueryOutput(t, nil, errors.New("exec: \"nvidia-smi\": executable file not found in $PATH"))

	status := Query(context.Background())
	if status.Installed {
		t.Fatal("expected installed=false when nvidia-smi is missing")
	}
}

func TestQueryReportsNotInstalledOnMalformedOutput(t *testing.T) {
	for name, out := range map[string]string{
		"empty":           "",
		"whitespace":      "   \n",
		"too few fields":  "580.105.08, NVIDIA RTX 4090\n",
		"too many fields": "a, b, c, d, e, f\n",
		"missing version": ", NVIDIA RTX 4090, 24564, 1295, 23269\n",
		"html error page": "<html><body>bad gateway</body></html>\n",
	} {
		t.Run(name, func(t *testing.T) {
			withQueryOutput(t, map[string]string{
				"driver_version,name,memory.total,memory.used,memory.free": out,
				"cuda_version": "",
			}, nil)

			if status := Query(context.Background()); status.Installed {
				t.Fatalf("output %q: expected installed=false, got %+v", out, status)
			}
		})
	}
}

func TestQueryMarksUnreportedMemoryAbsent(t *testing.T) {
	withQueryOutput(t, map[string]string{
		"driver_version,name,memory.total,memory.used,memory.free": "580.105.08, GRID vGPU, [N/A], [N/A], [N/A]\n",
		"cuda_version": "[N/A]\n",
	}, nil)

	status := Query(context.Background())
	if !status.Installed {
		t.Fatal("expected installed=true")
	}
	if status.MemoryTotalMiB != MemoryAbsent || status.MemoryUsedMiB != MemoryAbsent || status.MemoryFreeMiB != MemoryAbsent {
		t.Errorf("expected absent memory figures, got %+v", status)
	}
	if status.CUDAVersion != "" {
		t.Errorf("cuda version = %q, want empty for [N/A]", status.CUDAVersion)
	}
}
