package callsim

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// MinServiceVersion is the oldest service release whose payloads this client
// understands.
const MinServiceVersion = "1.0.0"

// CheckCompatibility verifies that the advertised service version satisfies
// MinServiceVersion. An unparsable version is reported as incompatible.
func CheckCompatibility(info ServiceInfo) error {
	v, err := semver.NewVersion(info.Version)
	if err != nil {
		return fmt.Errorf("%w: service version %q is not semver: %w", ErrIncompatible, info.Version, err)
	}

	constraint, err := semver.NewConstraint(">= " + MinServiceVersion)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: service %s is older than %s", ErrIncompatible, v, MinServiceVersion)
	}
	return nil
}
