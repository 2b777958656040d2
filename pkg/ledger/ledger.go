// Package ledger maintains the authoritative, monotonically increasing
// history of a project's version. The history lives in a JSON log file; the
// canonical current version lives in the project manifest. Every read path
// runs the same normalize-and-validate routine, so the persisted ordering
// invariant is checked on every access, not just at write time.
//
// A Ledger is an explicitly passed handle, never a process-wide singleton;
// tests construct isolated instances over temporary directories. Concurrent
// bumps against the same project are not supported: the design assumes a
// single writer per project at a time.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"specdown/internal/semver"
	"specdown/pkg/storage"
	"specdown/pkg/syncer"
)

// Entry is one recorded version. Immutable once appended, except that the
// version text is normalized to canonical form on every read.
type Entry struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes,omitempty"`
}

// versionLog is the persisted log shape.
type versionLog struct {
	History []Entry `json:"history"`
}

// ReferenceUpdater is the synchronizer collaborator: it rewrites every
// eligible reference file to the target version and reports what changed.
type ReferenceUpdater interface {
	DetectAndUpdate(ctx context.Context, newVersion string) ([]syncer.FileUpdate, error)
}

// Ledger owns the on-disk version log and reads the canonical version from
// the project manifest.
type Ledger struct {
	store        storage.Storage
	manifestPath string
	logPath      string
	refs         ReferenceUpdater

	now func() time.Time
}

// New builds a Ledger over the given storage. refs may be nil when the
// caller never bumps (read-only history inspection).
func New(store storage.Storage, manifestPath, logPath string, refs ReferenceUpdater) *Ledger {
	return &Ledger{
		store:        store,
		manifestPath: manifestPath,
		logPath:      logPath,
		refs:         refs,
		now:          time.Now,
	}
}

// CurrentVersion reads and validates the manifest's top-level version field.
func (l *Ledger) CurrentVersion() (semver.Version, error) {
	content, err := l.store.ReadFile(l.manifestPath)
	if err != nil {
		return semver.Version{}, err
	}

	var manifest struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal([]byte(content), &manifest); err != nil {
		return semver.Version{}, fmt.Errorf("parse manifest %s: %w", l.manifestPath, err)
	}

	v, err := semver.Parse(manifest.Version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("manifest %s: %w", l.manifestPath, err)
	}
	return v, nil
}

// readLog loads, normalizes and validates the full history. A missing log
// file is an empty history, created lazily on the next append.
func (l *Ledger) readLog() (versionLog, error) {
	if !l.store.FileExists(l.logPath) {
		return versionLog{History: []Entry{}}, nil
	}

	content, err := l.store.ReadFile(l.logPath)
	if err != nil {
		return versionLog{}, err
	}

	var log versionLog
	if err := json.Unmarshal([]byte(content), &log); err != nil {
		return versionLog{}, fmt.Errorf("%w: %s: %v", ErrInvalidLog, l.logPath, err)
	}
	if log.History == nil {
		return versionLog{}, fmt.Errorf("%w: %s: missing history field", ErrInvalidLog, l.logPath)
	}

	// Normalize every entry and enforce the non-decreasing order invariant.
	// Repair here means re-normalizing textual formatting only; entries are
	// never reordered or dropped.
	var prev semver.Version
	for i := range log.History {
		v, err := semver.Parse(log.History[i].Version)
		if err != nil {
			return versionLog{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidLog, i, err)
		}
		log.History[i].Version = v.String()

		if i > 0 && v.Less(prev) {
			return versionLog{}, fmt.Errorf("%w: entry %d (%s) precedes entry %d (%s)",
				ErrInvalidLog, i, v, i-1, prev)
		}
		prev = v
	}

	return log, nil
}

func (l *Ledger) writeLog(log versionLog) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize version log: %w", err)
	}
	return l.store.WriteFile(l.logPath, string(data)+"\n")
}

// latest returns the last logged version, or false when the history is empty.
func latest(log versionLog) (semver.Version, bool) {
	if len(log.History) == 0 {
		return semver.Version{}, false
	}
	// readLog validated every entry; the last one parses.
	v, _ := semver.Parse(log.History[len(log.History)-1].Version)
	return v, true
}

func (l *Ledger) append(log versionLog, v semver.Version, notes string) (Entry, error) {
	entry := Entry{
		Version:   v.String(),
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Notes:     notes,
	}
	log.History = append(log.History, entry)
	if err := l.writeLog(log); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// History returns the full normalized log.
func (l *Ledger) History() ([]Entry, error) {
	log, err := l.readLog()
	if err != nil {
		return nil, err
	}
	return log.History, nil
}

// ValidateHistory checks the persisted log without modifying it.
func (l *Ledger) ValidateHistory() error {
	_, err := l.readLog()
	return err
}

// EnsureCurrentVersionValid reconciles the manifest version against the
// log's latest entry. It records an initial entry for an empty history,
// records an externally bumped manifest version, fails on a regression, and
// is a no-op when the two agree, so repeated calls with no intervening
// change produce no further writes.
func (l *Ledger) EnsureCurrentVersionValid() error {
	current, err := l.CurrentVersion()
	if err != nil {
		return err
	}

	log, err := l.readLog()
	if err != nil {
		return err
	}

	last, ok := latest(log)
	if !ok {
		_, err := l.append(log, current, "initial recorded version")
		return err
	}

	switch semver.Compare(current, last) {
	case -1:
		return fmt.Errorf("%w: manifest version %s is behind recorded version %s",
			ErrRegression, current, last)
	case 1:
		_, err := l.append(log, current, "detected external version change")
		return err
	default:
		return nil
	}
}

// RecordCurrentVersion appends the manifest's current version to the log.
// Recording a version behind the history fails with ErrRegression; recording
// the latest version again fails with ErrDuplicateVersion.
func (l *Ledger) RecordCurrentVersion(notes string) (Entry, error) {
	current, err := l.CurrentVersion()
	if err != nil {
		return Entry{}, err
	}

	log, err := l.readLog()
	if err != nil {
		return Entry{}, err
	}

	if last, ok := latest(log); ok {
		switch semver.Compare(current, last) {
		case -1:
			return Entry{}, fmt.Errorf("%w: %s is behind recorded version %s",
				ErrRegression, current, last)
		case 0:
			return Entry{}, fmt.Errorf("%w: %s", ErrDuplicateVersion, current)
		}
	}

	return l.append(log, current, notes)
}

// NextVersion computes the version a bump at the given level would produce.
// Pure function of the log: the latest logged version (0.0.0 for an empty
// history) advanced one step. No side effects.
func (l *Ledger) NextVersion(level semver.Level) (semver.Version, error) {
	log, err := l.readLog()
	if err != nil {
		return semver.Version{}, err
	}
	base, _ := latest(log)
	return base.Bump(level), nil
}

// Increment orchestrates a full bump: compute the next version, rewrite
// every eligible reference file, then record the new manifest version. A
// bump that changes zero files fails with ErrNoReferencesUpdated. Updates
// applied before a failure are returned, not rolled back.
func (l *Ledger) Increment(ctx context.Context, level semver.Level, notes string) (semver.Version, []syncer.FileUpdate, error) {
	if l.refs == nil {
		return semver.Version{}, nil, fmt.Errorf("ledger has no reference synchronizer configured")
	}

	next, err := l.NextVersion(level)
	if err != nil {
		return semver.Version{}, nil, err
	}

	updates, err := l.refs.DetectAndUpdate(ctx, next.String())
	if err != nil {
		return semver.Version{}, updates, err
	}
	if len(updates) == 0 {
		return semver.Version{}, nil, fmt.Errorf("%w: no tracked file was behind %s",
			ErrNoReferencesUpdated, next)
	}

	if _, err := l.RecordCurrentVersion(notes); err != nil {
		return semver.Version{}, updates, err
	}
	return next, updates, nil
}
