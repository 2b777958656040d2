package syncer

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Strategy selects how an embedded version is detected and rewritten in one
// reference file. The set is closed: behavior is dispatched through a table,
// and adding a file type means adding a table row, not touching the
// synchronization loop.
type Strategy int

const (
	// StrategyManifest parses the file as a YAML document and rewrites its
	// top-level "version" scalar, re-serializing the whole document.
	StrategyManifest Strategy = iota

	// StrategyFreeText finds the first version-shaped substring (optionally
	// preceded by a "version:", "version=" or "v" marker) and substitutes
	// the new version text for the matched version span.
	StrategyFreeText
)

// String returns the strategy name for warnings and JSON output.
func (s Strategy) String() string {
	switch s {
	case StrategyManifest:
		return "manifest"
	case StrategyFreeText:
		return "free-text"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// strategyFuncs is one row of the dispatch table: detect the embedded
// version text, and rewrite it in place.
type strategyFuncs struct {
	detect  func(content string) (string, bool)
	replace func(content, newVersion string) (string, error)
}

var strategies = map[Strategy]strategyFuncs{
	StrategyManifest: {detect: manifestDetect, replace: manifestReplace},
	StrategyFreeText: {detect: freeTextDetect, replace: freeTextReplace},
}

// freeTextRe matches an embedded version with an optional marker. Only the
// digits are captured so replacement touches the version span alone, never
// the marker.
var freeTextRe = regexp.MustCompile(`(?i)(?:version\s*[:=]\s*|v)(\d+\.\d+\.\d+)`)

// versionScalar walks the document's top-level mapping and returns the value
// node of its "version" key.
func versionScalar(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "version" {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func manifestDetect(content string) (string, bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return "", false
	}
	node := versionScalar(&doc)
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", false
	}
	return node.Value, true
}

func manifestReplace(content, newVersion string) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return "", fmt.Errorf("parse manifest: %w", err)
	}
	node := versionScalar(&doc)
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("manifest has no top-level version field")
	}
	node.Value = newVersion
	node.Tag = "!!str"

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("serialize manifest: %w", err)
	}
	return string(out), nil
}

func freeTextDetect(content string) (string, bool) {
	m := freeTextRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// freeTextReplace substitutes the new version text verbatim for the first
// matched version span. The marker preceding the span is left untouched.
func freeTextReplace(content, newVersion string) (string, error) {
	loc := freeTextRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return "", fmt.Errorf("no embedded version found")
	}
	// loc[2]:loc[3] is the captured digits group, not the whole match.
	return content[:loc[2]] + newVersion + content[loc[3]:], nil
}
