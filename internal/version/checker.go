// Package version implements the config/runtime compatibility check. It
// does not check for updates or make any network call — that feature of
// the teacher repo this package is adapted from relied on reaching
// GitHub, which is explicitly out of scope here.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

const upgradeGuidePath = "https://xplr.dev/en/upgrade-guide"

// parsed is major.minor.bugfix[-prerelease].
type parsed struct {
	major, minor, bugfix int
	prerelease           string
}

func parse(v string) (parsed, error) {
	v = strings.TrimPrefix(v, "v")
	core, prerelease, _ := strings.Cut(v, "-")

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return parsed{}, fmt.Errorf("version %q is not major.minor.bugfix", v)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return parsed{}, fmt.Errorf("version %q: component %q is not a number: %w", v, p, err)
		}
		nums[i] = n
	}

	return parsed{major: nums[0], minor: nums[1], bugfix: nums[2], prerelease: prerelease}, nil
}

// Compatible reports whether a config written against configVersion may
// be loaded by a runtime at runtimeVersion: major and minor must match
// exactly, the runtime's bugfix component must be at least the config's,
// and any prerelease tag must match exactly.
func Compatible(configVersion, runtimeVersion string) (bool, error) {
	cfg, err := parse(configVersion)
	if err != nil {
		return false, fmt.Errorf("parsing config version: %w", err)
	}
	rt, err := parse(runtimeVersion)
	if err != nil {
		return false, fmt.Errorf("parsing runtime version: %w", err)
	}

	if cfg.major != rt.major || cfg.minor != rt.minor || cfg.prerelease != rt.prerelease {
		return false, incompatible(configVersion, runtimeVersion)
	}
	if rt.bugfix < cfg.bugfix {
		return false, incompatible(configVersion, runtimeVersion)
	}
	return true, nil
}

func incompatible(configVersion, runtimeVersion string) error {
	return fmt.Errorf(
		"config version %s is incompatible with runtime version %s; see %s",
		configVersion, runtimeVersion, upgradeGuidePath,
	)
}
