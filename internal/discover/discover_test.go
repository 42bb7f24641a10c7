package discover

import (
	"os"
	"path/filepath"
	"testing"
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

func TestFilesFindsPython(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "app.py", "x = 1\n")
	writeFile(t, root, "pkg/models.py", "y = 2\n")
	writeFile(t, root, "README.md", "docs\n")
	writeFile(t, root, "pkg/data.json", "{}\n")

	files, err := Files(root)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	want := []string{"app.py", filepath.Join("pkg", "models.py")}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestFilesSkipsEnvironmentDirs(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, "app.py", "x = 1\n")
	writeFile(t, root, ".venv/lib/thing.py", "x = 1\n")
	writeFile(t, root, "venv/other.py", "x = 1\n")
	writeFile(t, root, "__pycache__/app.cpython-311.py", "x = 1\n")
	writeFile(t, root, ".hidden/secret.py", "x = 1\n")

	files, err := Files(root)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 1 || files[0] != "app.py" {
		t.Errorf("got %v, want [app.py]", files)
	}
}

func TestFilesHonorsGitignore(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	writeFile(t, root, ".gitignore", "generated/\n")
	writeFile(t, root, "app.py", "x = 1\n")
	writeFile(t, root, "generated/gen.py", "x = 1\n")

	files, err := Files(root)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 1 || files[0] != "app.py" {
		t.Errorf("got %v, want [app.py]", files)
	}
}

func TestFilesMissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := Files(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}
