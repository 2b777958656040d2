// Package project loads specdown.yaml. The file is both the tool config and
// the canonical version manifest: its top-level version field is the source
// of truth the ledger reads and the synchronizer rewrites.
package project

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"specdown/pkg/ledger"
	"specdown/pkg/storage"
	"specdown/pkg/syncer"
)

// ManifestName is the config/manifest file looked up in the project root.
const ManifestName = "specdown.yaml"

// DefaultLogPath is where the version history lives, relative to the root.
const DefaultLogPath = ".specdown/version-log.json"

// Project is a loaded specdown project.
type Project struct {
	// Dir is the project root.
	Dir string

	// HasManifest reports whether specdown.yaml was found. Without it the
	// remaining fields hold defaults.
	HasManifest bool

	Name       string
	Version    string
	Spec       string   // OpenAPI document path, relative to Dir
	Output     string   // generated docs directory, relative to Dir
	Log        string   // version log path, relative to Dir
	References []string // extra free-text files tracking the version
}

// Load reads specdown.yaml from dir, falling back to defaults when the file
// is absent. Any other read failure is fatal.
func Load(dir string) (*Project, error) {
	v := viper.New()
	v.SetConfigName("specdown")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("spec", "openapi.yaml")
	v.SetDefault("output", "docs")
	v.SetDefault("log", DefaultLogPath)
	v.SetDefault("references", []string{"README.md"})

	p := &Project{Dir: dir, HasManifest: true}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read %s: %w", ManifestName, err)
		}
		p.HasManifest = false
	}

	p.Name = v.GetString("name")
	p.Version = v.GetString("version")
	p.Spec = v.GetString("spec")
	p.Output = v.GetString("output")
	p.Log = v.GetString("log")
	p.References = v.GetStringSlice("references")
	return p, nil
}

// ManifestPath returns the absolute manifest location.
func (p *Project) ManifestPath() string {
	return filepath.Join(p.Dir, ManifestName)
}

// SpecPath returns the absolute OpenAPI document location.
func (p *Project) SpecPath() string {
	return filepath.Join(p.Dir, p.Spec)
}

// OutputDir returns the absolute docs output directory.
func (p *Project) OutputDir() string {
	return filepath.Join(p.Dir, p.Output)
}

// LogPath returns the absolute version log location.
func (p *Project) LogPath() string {
	return filepath.Join(p.Dir, p.Log)
}

// NewSynchronizer builds the reference registry: the manifest itself under
// the structured strategy, plus every configured free-text reference.
func (p *Project) NewSynchronizer(store storage.Storage) *syncer.Synchronizer {
	refs := []syncer.Reference{
		{Path: p.ManifestPath(), Strategy: syncer.StrategyManifest},
	}
	for _, ref := range p.References {
		refs = append(refs, syncer.Reference{
			Path:     filepath.Join(p.Dir, ref),
			Strategy: syncer.StrategyFreeText,
		})
	}
	return syncer.New(store, refs)
}

// NewLedger builds the version ledger for this project, wired to the
// reference synchronizer.
func (p *Project) NewLedger(store storage.Storage, refs ledger.ReferenceUpdater) *ledger.Ledger {
	return ledger.New(store, p.ManifestPath(), p.LogPath(), refs)
}
