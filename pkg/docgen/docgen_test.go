package docgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const petstoreSpec = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
  description: A small pet store API.
servers:
  - url: https://api.example.com/v1
paths:
  /pets:
    get:
      tags: [Pets]
      operationId: listPets
      summary: List all pets
      parameters:
        - name: limit
          in: query
          description: Maximum number of pets to return
          required: false
          schema:
            type: integer
      responses:
        "200":
          description: A paged list of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
    post:
      tags: [Pets]
      operationId: createPet
      summary: Create a pet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
      responses:
        "201":
          description: Pet created
  /pets/{petId}:
    get:
      tags: [Pets]
      operationId: getPet
      summary: Get a pet by id
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: The pet
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
        "404":
          description: Not found
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
        name:
          type: string
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}
	return path
}

func TestGenerateMarkdown(t *testing.T) {
	gen := New(writeSpec(t, petstoreSpec), Config{})

	out, err := gen.GenerateMarkdown()
	if err != nil {
		t.Fatalf("GenerateMarkdown failed: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"# Petstore",
		"Version 1.0.0",
		"A small pet store API.",
		"Base URL: `https://api.example.com/v1`",
		"## Pets",
		"### GET `/pets`",
		"### POST `/pets`",
		"### GET `/pets/{petId}`",
		"List all pets",
		"| limit | query | integer | no | Maximum number of pets to return |",
		"| petId | path | string | yes |",
		"Request body (application/json): Pet (required)",
		"| 200 | A paged list of pets | array of Pet (application/json) |",
		"| 404 | Not found |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestGenerateMarkdown_MethodOrderWithinPath(t *testing.T) {
	gen := New(writeSpec(t, petstoreSpec), Config{})

	out, err := gen.GenerateMarkdown()
	if err != nil {
		t.Fatalf("GenerateMarkdown failed: %v", err)
	}
	md := string(out)

	getIdx := strings.Index(md, "### GET `/pets`")
	postIdx := strings.Index(md, "### POST `/pets`")
	if getIdx < 0 || postIdx < 0 || getIdx > postIdx {
		t.Errorf("GET should render before POST for the same path (got %d, %d)", getIdx, postIdx)
	}
}

func TestGenerateMarkdown_ConfigOverrides(t *testing.T) {
	gen := New(writeSpec(t, petstoreSpec), Config{Title: "Petstore Reference", Version: "2.1.0"})

	out, err := gen.GenerateMarkdown()
	if err != nil {
		t.Fatalf("GenerateMarkdown failed: %v", err)
	}
	md := string(out)

	if !strings.Contains(md, "# Petstore Reference") {
		t.Errorf("title override missing:\n%s", md)
	}
	if !strings.Contains(md, "Version 2.1.0") {
		t.Errorf("version override missing:\n%s", md)
	}
	if strings.Contains(md, "Version 1.0.0") {
		t.Error("spec version should be replaced by the override")
	}
}

func TestGenerateMarkdown_InvalidSpec(t *testing.T) {
	gen := New(writeSpec(t, "openapi: 3.0.3\ninfo:\n  title: Broken\n"), Config{})

	if _, err := gen.GenerateMarkdown(); err == nil {
		t.Error("GenerateMarkdown should fail for a spec without paths or version")
	}
}

func TestGenerateMarkdown_ExternalRef(t *testing.T) {
	tmpDir := t.TempDir()

	schema := `type: object
properties:
  code:
    type: integer
  message:
    type: string
`
	if err := os.WriteFile(filepath.Join(tmpDir, "error.yaml"), []byte(schema), 0644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}

	spec := `openapi: 3.0.3
info:
  title: Errors
  version: 0.1.0
paths:
  /health:
    get:
      responses:
        "500":
          description: Failure
          content:
            application/json:
              schema:
                $ref: "error.yaml"
`
	specPath := filepath.Join(tmpDir, "openapi.yaml")
	if err := os.WriteFile(specPath, []byte(spec), 0644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}

	gen := New(specPath, Config{})
	out, err := gen.GenerateMarkdown()
	if err != nil {
		t.Fatalf("GenerateMarkdown with external $ref failed: %v", err)
	}
	if !strings.Contains(string(out), "### GET `/health`") {
		t.Errorf("markdown missing health operation:\n%s", out)
	}
}

func TestWriteToFile(t *testing.T) {
	tmpDir := t.TempDir()
	gen := New(writeSpec(t, petstoreSpec), Config{})

	outPath := filepath.Join(tmpDir, "docs", "api.md")
	if err := gen.WriteToFile(outPath); err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output failed: %v", err)
	}
	if !strings.Contains(string(data), "# Petstore") {
		t.Errorf("written docs missing title:\n%s", data)
	}
}
