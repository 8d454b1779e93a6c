package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunCopyDryRunDoesNotWriteDestination(t *testing.T) {
	root := t.TempDir()
	from := filepath.Join(root, "repo")
	to := filepath.Join(root, "docs")

	writeTestFile(t, filepath.Join(from, "README.md"), "# Hello\n")
	writeTestFile(t, filepath.Join(to, "projects.json"), `{"svc": {"path": "services/svc"}}`)

	documentsConfig := map[string]interface{}{
		"documents": []map[string]interface{}{
			{"project": "svc", "source": "README.md", "destination": "guides/"},
		},
	}
	configBytes, _ := json.Marshal(documentsConfig)
	configPath := filepath.Join(root, "documents.json")
	writeTestFile(t, configPath, string(configBytes))

	opts := &copyOptions{
		indexRepo:  "svc",
		from:       from,
		to:         to,
		configPath: configPath,
		branch:     "main",
		author:     "tester",
		dryRun:     true,
	}

	var out, errOut bytes.Buffer
	if err := runCopy(opts, &out, &errOut); err != nil {
		t.Fatalf("runCopy: %v", err)
	}

	if _, err := os.Stat(filepath.Join(to, "services/svc/guides/README.md")); err == nil {
		t.Fatal("dry-run should not have written the destination file")
	}
	if !strings.Contains(out.String(), "[COPY]") {
		t.Fatalf("expected a [COPY] summary line, got %q", out.String())
	}
}

func TestRunCopyWritesDestinationAndIndex(t *testing.T) {
	root := t.TempDir()
	from := filepath.Join(root, "repo")
	to := filepath.Join(root, "docs")

	writeTestFile(t, filepath.Join(from, "README.md"), "# Hello\n")
	writeTestFile(t, filepath.Join(to, "projects.json"), `{"svc": {"path": "services/svc"}}`)

	documentsConfig := map[string]interface{}{
		"documents": []map[string]interface{}{
			{"project": "svc", "source": "README.md", "destination": "guides/"},
		},
	}
	configBytes, _ := json.Marshal(documentsConfig)
	configPath := filepath.Join(root, "documents.json")
	writeTestFile(t, configPath, string(configBytes))

	opts := &copyOptions{
		indexRepo:  "svc",
		from:       from,
		to:         to,
		configPath: configPath,
		branch:     "main",
		author:     "tester",
	}

	var out, errOut bytes.Buffer
	if err := runCopy(opts, &out, &errOut); err != nil {
		t.Fatalf("runCopy: %v", err)
	}

	destPath := filepath.Join(to, "services/svc/guides/README.md")
	if _, err := os.Stat(destPath); err != nil {
		t.Fatalf("expected destination file to be written: %v", err)
	}
	indexEntries, err := os.ReadDir(filepath.Join(to, ".index", "svc"))
	if err != nil || len(indexEntries) != 1 {
		t.Fatalf("expected one index entry for svc, got %v (err=%v)", indexEntries, err)
	}
}

func TestRunCopyReportsConfigLoadError(t *testing.T) {
	root := t.TempDir()
	from := filepath.Join(root, "repo")
	to := filepath.Join(root, "docs")
	writeTestFile(t, filepath.Join(to, "projects.json"), `{}`)

	opts := &copyOptions{
		indexRepo:  "svc",
		from:       from,
		to:         to,
		configPath: filepath.Join(root, "missing.json"),
		branch:     "main",
		author:     "tester",
	}

	var out, errOut bytes.Buffer
	err := runCopy(opts, &out, &errOut)
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if ExitCode(err) != 1 {
		t.Fatalf("expected exit code 1, got %d", ExitCode(err))
	}
	if !strings.Contains(out.String(), "Config file load error") {
		t.Fatalf("expected config error message on stdout, got %q", out.String())
	}
}
