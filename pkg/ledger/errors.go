package ledger

import "errors"

// Sentinel errors for ledger failure classification. Use
// errors.Is(err, ErrXxx) for typed assertions rather than string matching.
// Invalid version text is signaled with semver.ErrInvalid.
var (
	// ErrRegression indicates a candidate version strictly less than the
	// latest known version, in the manifest or the persisted history.
	// Never auto-corrected.
	ErrRegression = errors.New("version regression")

	// ErrInvalidLog indicates the log file exists but does not deserialize
	// to the expected shape, or its entries are out of order.
	ErrInvalidLog = errors.New("invalid version log")

	// ErrDuplicateVersion indicates the candidate equals the latest logged
	// version: there is nothing to record.
	ErrDuplicateVersion = errors.New("version already recorded")

	// ErrNoReferencesUpdated indicates a bump found zero files with an
	// out-of-date embedded version. Treated as a configuration problem.
	ErrNoReferencesUpdated = errors.New("no reference files were updated")
)
