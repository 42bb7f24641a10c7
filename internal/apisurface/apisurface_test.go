package apisurface

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/phelan/cairn/internal/model"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestExtractRouteDecorator(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "routes.py", `@app.get("/ping")
def ping():
    return "pong"
`)

	apis, err := Extract(root)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	endpoints, ok := apis["routes.py"]
	if !ok {
		t.Fatalf("no endpoints for routes.py in %v", apis)
	}
	if len(endpoints) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(endpoints))
	}
	want := model.Endpoint{Method: "GET", Path: "/ping", Handler: "ping"}
	if endpoints[0] != want {
		t.Errorf("endpoint = %+v, want %+v", endpoints[0], want)
	}
}

func TestExtractDefaultsPathToHandlerName(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "routes.py", `@router.post()
def submit():
    pass
`)

	apis, err := Extract(root)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	endpoints := apis["routes.py"]
	if len(endpoints) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(endpoints))
	}
	if endpoints[0].Path != "/submit" || endpoints[0].Method != "POST" {
		t.Errorf("endpoint = %+v, want POST /submit", endpoints[0])
	}
}

func TestExtractIgnoresNonRouteDecorators(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "plain.py", `@cached
def compute():
    pass

@functools.wraps(fn)
def wrapper():
    pass

def undecorated():
    pass
`)

	apis, err := Extract(root)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(apis) != 0 {
		t.Errorf("got %v, want no endpoint files", apis)
	}
}

func TestExtractMultipleMethodsAndFiles(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "api/users.py", `@app.get("/users")
def list_users():
    pass

@app.post("/users")
def create_user():
    pass

@app.delete("/users/{id}")
def delete_user(id):
    pass
`)

	apis, err := Extract(root)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	endpoints := apis["api/users.py"]
	if len(endpoints) != 3 {
		t.Fatalf("got %d endpoints, want 3: %v", len(endpoints), endpoints)
	}
	if endpoints[2].Method != "DELETE" || endpoints[2].Path != "/users/{id}" {
		t.Errorf("endpoint[2] = %+v, want DELETE /users/{id}", endpoints[2])
	}
}

func TestExportOpenAPI(t *testing.T) {
	t.Parallel()
	outDir := filepath.Join(t.TempDir(), "contracts")

	apis := map[string][]model.Endpoint{
		"api/users.py": {
			{Method: "GET", Path: "/users", Handler: "list_users"},
			{Method: "POST", Path: "/users", Handler: "create_user"},
		},
	}
	if err := ExportOpenAPI(outDir, apis, "Test API", "2.0.0"); err != nil {
		t.Fatalf("ExportOpenAPI: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "users.openapi.yaml"))
	if err != nil {
		t.Fatalf("reading contract: %v", err)
	}

	var doc struct {
		OpenAPI string `yaml:"openapi"`
		Info    struct {
			Title   string `yaml:"title"`
			Version string `yaml:"version"`
		} `yaml:"info"`
		Paths map[string]map[string]struct {
			OperationID string `yaml:"operationId"`
		} `yaml:"paths"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decoding contract: %v", err)
	}

	if doc.OpenAPI != "3.0.0" {
		t.Errorf("openapi = %q, want 3.0.0", doc.OpenAPI)
	}
	if doc.Info.Title != "Test API" || doc.Info.Version != "2.0.0" {
		t.Errorf("info = %+v", doc.Info)
	}
	ops := doc.Paths["/users"]
	if len(ops) != 2 {
		t.Fatalf("got %d operations for /users, want 2", len(ops))
	}
	if ops["get"].OperationID != "list_users" {
		t.Errorf("get operationId = %q, want list_users", ops["get"].OperationID)
	}
}

// Contract documents are keyed by base name, so files sharing a stem in
// different directories overwrite one another; the last write wins.
func TestExportOpenAPISameStemOverwrites(t *testing.T) {
	t.Parallel()
	outDir := filepath.Join(t.TempDir(), "contracts")

	apis := map[string][]model.Endpoint{
		"a/routes.py": {{Method: "GET", Path: "/a", Handler: "a"}},
		"b/routes.py": {{Method: "GET", Path: "/b", Handler: "b"}},
	}
	if err := ExportOpenAPI(outDir, apis, "t", "1.0.0"); err != nil {
		t.Fatalf("ExportOpenAPI: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading outDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "routes.openapi.yaml" {
		t.Errorf("entries = %v, want exactly routes.openapi.yaml", entries)
	}
}
