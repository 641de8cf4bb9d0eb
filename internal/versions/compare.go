// Package versions compares release versions of the fuzzy binary.
package versions

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// TooOldError is returned when a pipeline requires a newer release than the one running
type TooOldError struct {
	Running  string
	Required string
}

func (e *TooOldError) Error() string {
	return fmt.Sprintf("configuration requires fuzzy %s or newer, running %s", e.Required, e.Running)
}

// IsNewerVersion reports whether newVersion is strictly greater than oldVersion.
// It uses semantic versioning for comparison when both strings are valid semver,
// and falls back to lexicographic string comparison otherwise.
func IsNewerVersion(newVersion, oldVersion string) bool {
	newSemver, errNew := semver.NewVersion(newVersion)
	oldSemver, errOld := semver.NewVersion(oldVersion)

	if errNew != nil || errOld != nil {
		return newVersion > oldVersion
	}

	return newSemver.GreaterThan(oldSemver)
}

// CheckMinVersion returns a *TooOldError when running is older than required.
// An empty requirement always passes, and so does a running version that is not
// semver, which is the case for development builds.
func CheckMinVersion(running, required string) error {
	if required == "" {
		return nil
	}
	if _, err := semver.NewVersion(required); err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", required, err)
	}
	if _, err := semver.NewVersion(running); err != nil {
		return nil
	}

	if IsNewerVersion(required, running) {
		return &TooOldError{Running: running, Required: required}
	}
	return nil
}
