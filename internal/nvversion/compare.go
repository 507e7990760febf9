// Package nvversion compares NVIDIA driver version strings.
//
// Driver versions are dotted integer tuples of varying length ("580.9",
// "581.80", "580.105.08") and are not semver: components may carry leading
// zeros and a third component is optional. hashicorp/go-version implements
// the component-wise integer comparison this scheme needs, zero-padding the
// shorter version, so "580.105" == "580.105.0" and "580.105" < "580.105.08".
package nvversion

import goversion "github.com/hashicorp/go-version"

// Outcome classifies an installed version against the latest published one.
type Outcome int

const (
	// Unknown means one of the versions could not be parsed.
	Unknown Outcome = iota
	// UpToDate means the installed version is equal to or newer than latest.
	UpToDate
	// UpdateAvailable means the published version is strictly newer.
	UpdateAvailable
)

func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up-to-date"
	case UpdateAvailable:
		return "update-available"
	default:
		return "unknown"
	}
}

// Compare classifies current against latest.
func Compare(current, latest string) Outcome {
	cur, err := goversion.NewVersion(current)
	if err != nil {
		return Unknown
	}
	lat, err := goversion.NewVersion(latest)
	if err != nil {
		return Unknown
	}

	if cur.LessThan(lat) {
		return UpdateAvailable
	}
	return UpToDate
}
