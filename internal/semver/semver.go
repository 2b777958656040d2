// Package semver implements the three-component numeric version model used
// across specdown: the release manifest, the version ledger, and every file
// that embeds a copy of the project version.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid is the sentinel for any version text that fails the strict
// "X.Y.Z" numeric pattern. Use errors.Is(err, ErrInvalid) for typed
// assertions rather than string matching.
var ErrInvalid = errors.New("invalid semantic version")

// versionRe accepts exactly "X.Y.Z" with numeric components. No "v" prefix,
// no pre-release tags, no build metadata.
var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a semantic version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Zero is the base version for a project with no recorded history.
var Zero = Version{}

// Parse parses a strict "X.Y.Z" version string. Anything that does not match
// the pattern is rejected, never coerced.
func Parse(s string) (Version, error) {
	m := versionRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q (expected X.Y.Z)", ErrInvalid, s)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: major component %q out of range", ErrInvalid, m[1])
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("%w: minor component %q out of range", ErrInvalid, m[2])
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, fmt.Errorf("%w: patch component %q out of range", ErrInvalid, m[3])
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// IsValid reports whether s parses as a strict "X.Y.Z" version.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String returns the canonical "X.Y.Z" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns the sign of a - b under the lexicographic triple order:
// major first, then minor, then patch.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		return sign(a.Major - b.Major)
	}
	if a.Minor != b.Minor {
		return sign(a.Minor - b.Minor)
	}
	return sign(a.Patch - b.Patch)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Equal reports whether v and other are the same triple.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// Level is a bump level: which component of the triple advances.
type Level string

const (
	LevelMajor Level = "major"
	LevelMinor Level = "minor"
	LevelPatch Level = "patch"
)

// ParseLevel validates a bump level string.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelMajor:
		return LevelMajor, nil
	case LevelMinor:
		return LevelMinor, nil
	case LevelPatch:
		return LevelPatch, nil
	default:
		return "", fmt.Errorf("invalid bump level %q (expected major, minor or patch)", s)
	}
}

// Bump returns the version advanced by one step at the given level. Lower
// components reset to zero.
func (v Version) Bump(level Level) Version {
	switch level {
	case LevelMajor:
		return Version{Major: v.Major + 1}
	case LevelMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
