package common

import (
	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Version is set via ldflags at build time: -ldflags "-X github.com/Alia5/bindoc/internal/docgen/common.Version=x.y.z"
var Version = ""

// GetVersion returns the version string that was set at build time via ldflags.
// Returns "0.0.1-dev" if Version is empty (development builds only).
func GetVersion() (string, error) {
	if Version == "" {
		return "0.0.1-dev", nil
	}

	v, err := semver.NewVersion(Version)
	if err != nil {
		return "", errors.Wrapf(err, "invalid version format: %s (expected x.y.z)", Version)
	}
	return v.String(), nil
}
