// Package docgen converts an OpenAPI 3.x document into Markdown reference
// documentation. Loading and $ref resolution are delegated to kin-openapi;
// rendering goes through text/template over a pre-chewed document model.
package docgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/getkin/kin-openapi/openapi3"
)

// Config overrides parts of the rendered document. Zero values fall back to
// the spec's own info section.
type Config struct {
	// Title overrides the spec's info.title.
	Title string

	// Version overrides the spec's info.version, so generated docs can be
	// stamped with the project's ledger version.
	Version string
}

// Generator renders one OpenAPI document to Markdown.
type Generator struct {
	specPath string
	config   Config
}

// New creates a Generator for the spec at specPath.
func New(specPath string, config Config) *Generator {
	return &Generator{specPath: specPath, config: config}
}

// methodOrder fixes the per-path operation ordering in the output.
var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// Load reads and validates the OpenAPI document, resolving external $refs.
func (g *Generator) Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(g.specPath)
	if err != nil {
		return nil, fmt.Errorf("load spec %s: %w", g.specPath, err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate spec %s: %w", g.specPath, err)
	}
	return doc, nil
}

// GenerateMarkdown loads the spec and renders the full Markdown document.
func (g *Generator) GenerateMarkdown() ([]byte, error) {
	doc, err := g.Load()
	if err != nil {
		return nil, err
	}

	model := g.buildModel(doc)

	tmpl, err := template.New("docs").Parse(docsTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse docs template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, model); err != nil {
		return nil, fmt.Errorf("render docs: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteToFile renders the docs and writes them to path, creating parent
// directories as needed.
func (g *Generator) WriteToFile(path string) error {
	out, err := g.GenerateMarkdown()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (g *Generator) buildModel(doc *openapi3.T) *docModel {
	model := &docModel{
		Title:       g.config.Title,
		Version:     g.config.Version,
		Description: "",
	}
	if doc.Info != nil {
		if model.Title == "" {
			model.Title = doc.Info.Title
		}
		if model.Version == "" {
			model.Version = doc.Info.Version
		}
		model.Description = strings.TrimSpace(doc.Info.Description)
	}
	if model.Title == "" {
		model.Title = "API"
	}
	if len(doc.Servers) > 0 {
		model.BaseURL = doc.Servers[0].URL
	}

	sections := map[string]*sectionDoc{}
	var order []string

	if doc.Paths != nil {
		paths := make([]string, 0, len(doc.Paths.Map()))
		for p := range doc.Paths.Map() {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		for _, p := range paths {
			item := doc.Paths.Map()[p]
			for _, method := range methodOrder {
				op := item.GetOperation(method)
				if op == nil {
					continue
				}

				tag := "Operations"
				if len(op.Tags) > 0 {
					tag = op.Tags[0]
				}
				section, ok := sections[tag]
				if !ok {
					section = &sectionDoc{Tag: tag}
					sections[tag] = section
					order = append(order, tag)
				}
				section.Operations = append(section.Operations, buildOperation(method, p, op))
			}
		}
	}

	for _, tag := range order {
		model.Sections = append(model.Sections, *sections[tag])
	}
	return model
}

func buildOperation(method, path string, op *openapi3.Operation) operationDoc {
	out := operationDoc{
		Method:      method,
		Path:        path,
		OperationID: op.OperationID,
		Summary:     strings.TrimSpace(op.Summary),
		Description: strings.TrimSpace(op.Description),
	}

	for _, ref := range op.Parameters {
		if ref.Value == nil {
			continue
		}
		p := ref.Value
		out.Parameters = append(out.Parameters, parameterDoc{
			Name:        p.Name,
			In:          p.In,
			Type:        schemaType(p.Schema),
			Required:    p.Required,
			Description: oneLine(p.Description),
		})
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		body := op.RequestBody.Value
		if contentType, media := pickContent(body.Content); media != nil {
			out.RequestBody = &bodyDoc{
				ContentType: contentType,
				Type:        schemaType(media.Schema),
				Required:    body.Required,
				Description: oneLine(body.Description),
			}
		}
	}

	if op.Responses != nil {
		statuses := make([]string, 0, len(op.Responses.Map()))
		for status := range op.Responses.Map() {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)

		for _, status := range statuses {
			ref := op.Responses.Map()[status]
			if ref == nil || ref.Value == nil {
				continue
			}
			resp := ref.Value
			r := responseDoc{Status: status}
			if resp.Description != nil {
				r.Description = oneLine(*resp.Description)
			}
			if contentType, media := pickContent(resp.Content); media != nil {
				r.ContentType = contentType
				r.Type = schemaType(media.Schema)
			}
			out.Responses = append(out.Responses, r)
		}
	}

	return out
}

// pickContent chooses one media type deterministically: application/json
// when present, otherwise the first in sorted order.
func pickContent(content openapi3.Content) (string, *openapi3.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	if media, ok := content["application/json"]; ok {
		return "application/json", media
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], content[keys[0]]
}

// schemaType produces a short human-readable type label for a schema.
// Named component schemas keep their name.
func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return ""
	}
	if ref.Ref != "" {
		parts := strings.Split(ref.Ref, "/")
		return parts[len(parts)-1]
	}
	if ref.Value == nil {
		return ""
	}

	s := ref.Value
	var t string
	if s.Type != nil && len(s.Type.Slice()) > 0 {
		t = s.Type.Slice()[0]
	}
	switch t {
	case "array":
		inner := schemaType(s.Items)
		if inner == "" {
			inner = "object"
		}
		return "array of " + inner
	case "":
		return "object"
	default:
		return t
	}
}

// oneLine collapses a multi-line description so it fits in a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
