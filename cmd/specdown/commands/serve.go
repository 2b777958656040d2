package commands

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"specdown/pkg/docgen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the generated documentation in a browser",
	Long: `Start a local server that renders the project's OpenAPI spec to
Markdown and serves it as a browsable page.

Examples:
  specdown serve
  specdown serve --port 9000
  specdown serve --open`,
	Run: runServe,
}

var (
	servePort string
	serveOpen bool
)

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to serve on")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the docs in the default browser")
}

func runServe(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	p := loadProject()

	fmt.Printf("\n  %s Docs Server\n\n", cyan("Specdown"))

	cfg := docgen.Config{Title: p.Name}
	if v, err := openLedger(p).CurrentVersion(); err == nil {
		cfg.Version = v.String()
	}
	gen := docgen.New(p.SpecPath(), cfg)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// The spec is re-rendered per request so edits show up on reload.
	r.Get("/docs.md", func(w http.ResponseWriter, req *http.Request) {
		out, err := gen.GenerateMarkdown()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write(out)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, docsPageHTML)
	})

	url := fmt.Sprintf("http://localhost:%s", servePort)
	fmt.Printf("  ➜ Docs:  %s\n", cyan(url))
	fmt.Printf("  ➜ Raw:   %s\n\n", cyan(url+"/docs.md"))

	if serveOpen {
		if err := browser.OpenURL(url); err != nil {
			fmt.Printf("  %s Could not open browser. Please visit %s\n", yellow("!"), url)
		}
	}

	fmt.Printf("  %s Serving docs (Ctrl+C to stop)\n\n", green("✓"))
	if err := http.ListenAndServe(":"+servePort, r); err != nil {
		fail(err)
	}
}

// docsPageHTML renders /docs.md client-side.
const docsPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>API Documentation</title>
    <style>
        body { max-width: 60rem; margin: 2rem auto; padding: 0 1rem;
               font-family: -apple-system, "Segoe UI", sans-serif; line-height: 1.6; }
        table { border-collapse: collapse; }
        th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
        code { background: #f4f4f4; padding: 0.1rem 0.3rem; border-radius: 3px; }
    </style>
</head>
<body>
    <div id="docs">Loading…</div>
    <script src="https://unpkg.com/marked@12/marked.min.js"></script>
    <script>
        fetch("/docs.md")
            .then(function(res) { return res.text(); })
            .then(function(md) {
                document.getElementById("docs").innerHTML = marked.parse(md);
            });
    </script>
</body>
</html>`
