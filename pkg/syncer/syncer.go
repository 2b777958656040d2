// Package syncer propagates a newly chosen project version into every file
// that embeds a copy of it. Each known reference file is bound to one update
// strategy; files are processed independently and concurrently, and a file
// is rewritten only when its embedded version is strictly older than the
// target.
package syncer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"specdown/internal/semver"
	"specdown/pkg/storage"
)

// Reference is one registered file that tracks the project version.
type Reference struct {
	Path     string
	Strategy Strategy
}

// FileUpdate records one file whose embedded version text was changed.
// Produced per synchronization run; never persisted.
type FileUpdate struct {
	Path       string `json:"path"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
}

// Synchronizer rewrites registered reference files to a target version. It
// owns no persistent state of its own.
type Synchronizer struct {
	store storage.Storage
	refs  []Reference

	// Logf receives non-fatal warnings (missing or unparseable reference
	// files). Nil means silent. File units run concurrently, but calls to
	// the hook are serialized, so it need not be safe for concurrent use.
	Logf func(format string, args ...any)

	logMu sync.Mutex
}

// New builds a Synchronizer over a fixed registry of reference files.
func New(store storage.Storage, refs []Reference) *Synchronizer {
	return &Synchronizer{store: store, refs: refs}
}

// References returns the registered reference files.
func (s *Synchronizer) References() []Reference {
	return s.refs
}

func (s *Synchronizer) warnf(format string, args ...any) {
	if s.Logf == nil {
		return
	}
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.Logf(format, args...)
}

// DetectAndUpdate rewrites every registered file whose embedded version is
// strictly older than newVersion. An invalid newVersion fails before any
// file is touched. Missing files are skipped with a warning. File units run
// concurrently; on failure partway through, the updates already applied are
// still returned alongside the error, nothing is rolled back.
func (s *Synchronizer) DetectAndUpdate(ctx context.Context, newVersion string) ([]FileUpdate, error) {
	next, err := semver.Parse(newVersion)
	if err != nil {
		return nil, fmt.Errorf("target version: %w", err)
	}

	results := make([]*FileUpdate, len(s.refs))

	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range s.refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			update, err := s.updateOne(ref, next)
			if err != nil {
				return err
			}
			results[i] = update
			return nil
		})
	}
	waitErr := g.Wait()

	var applied []FileUpdate
	for _, u := range results {
		if u != nil {
			applied = append(applied, *u)
		}
	}
	return applied, waitErr
}

// updateOne is a single unit of work: read, detect, optionally rewrite.
// A nil FileUpdate with a nil error means the file was skipped.
func (s *Synchronizer) updateOne(ref Reference, next semver.Version) (*FileUpdate, error) {
	fns, ok := strategies[ref.Strategy]
	if !ok {
		return nil, fmt.Errorf("%s: unknown update strategy %v", ref.Path, ref.Strategy)
	}

	if !s.store.FileExists(ref.Path) {
		s.warnf("reference file %s not found, skipping", ref.Path)
		return nil, nil
	}

	content, err := s.store.ReadFile(ref.Path)
	if err != nil {
		return nil, err
	}

	detected, ok := fns.detect(content)
	if !ok {
		s.warnf("no embedded version detected in %s (%s strategy), skipping", ref.Path, ref.Strategy)
		return nil, nil
	}

	current, err := semver.Parse(detected)
	if err != nil {
		s.warnf("embedded version %q in %s is not a valid version, skipping", detected, ref.Path)
		return nil, nil
	}

	if !current.Less(next) {
		return nil, nil
	}

	rewritten, err := fns.replace(content, next.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref.Path, err)
	}
	if err := s.store.WriteFile(ref.Path, rewritten); err != nil {
		return nil, err
	}

	return &FileUpdate{
		Path:       ref.Path,
		OldVersion: current.String(),
		NewVersion: next.String(),
	}, nil
}
