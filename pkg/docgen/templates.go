package docgen

// Template data structures

type docModel struct {
	Title       string
	Version     string
	Description string
	BaseURL     string
	Sections    []sectionDoc
}

type sectionDoc struct {
	Tag        string
	Operations []operationDoc
}

type operationDoc struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Parameters  []parameterDoc
	RequestBody *bodyDoc
	Responses   []responseDoc
}

type parameterDoc struct {
	Name        string
	In          string
	Type        string
	Required    bool
	Description string
}

type bodyDoc struct {
	ContentType string
	Type        string
	Required    bool
	Description string
}

type responseDoc struct {
	Status      string
	Description string
	ContentType string
	Type        string
}

// Markdown document template
var docsTemplate = `# {{.Title}}
{{if .Version}}
Version {{.Version}}
{{end}}{{if .Description}}
{{.Description}}
{{end}}{{if .BaseURL}}
Base URL: ` + "`{{.BaseURL}}`" + `
{{end}}{{range .Sections}}
## {{.Tag}}
{{range .Operations}}
### {{.Method}} ` + "`{{.Path}}`" + `
{{if .Summary}}
{{.Summary}}
{{end}}{{if .Description}}
{{.Description}}
{{end}}{{if .Parameters}}
| Parameter | In | Type | Required | Description |
|-----------|----|------|----------|-------------|
{{range .Parameters}}| {{.Name}} | {{.In}} | {{.Type}} | {{if .Required}}yes{{else}}no{{end}} | {{.Description}} |
{{end}}{{end}}{{with .RequestBody}}
Request body ({{.ContentType}}): {{.Type}}{{if .Required}} (required){{end}}{{if .Description}}. {{.Description}}{{end}}
{{end}}{{if .Responses}}
| Status | Description | Content |
|--------|-------------|---------|
{{range .Responses}}| {{.Status}} | {{.Description}} | {{if .Type}}{{.Type}} ({{.ContentType}}){{end}} |
{{end}}{{end}}{{end}}{{end}}`
