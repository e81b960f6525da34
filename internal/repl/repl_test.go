package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDispatchHelp(t *testing.T) {
	r := New(false)
	var buf bytes.Buffer
	r.dispatch(":help", &buf)
	if !strings.Contains(buf.String(), ":load") {
		t.Errorf("expected :help to list :load, got %q", buf.String())
	}
}

func TestDispatchUnrecognized(t *testing.T) {
	r := New(false)
	var buf bytes.Buffer
	r.dispatch(":bogus", &buf)
	if !strings.Contains(buf.String(), "unrecognized command") {
		t.Errorf("expected an unrecognized-command message, got %q", buf.String())
	}
}

func TestLoadValidModulePrintsBindings(t *testing.T) {
	fixture := `{"decls":[{"kind":"let","name":"one","value":{"kind":"int","value":1}}]}`
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	r := New(false)
	var buf bytes.Buffer
	r.dispatch(":load "+path, &buf)
	out := buf.String()
	if !strings.Contains(out, "one") || !strings.Contains(out, "Int") {
		t.Errorf("expected one : Int in output, got %q", out)
	}
}

func TestLoadMissingFileRendersError(t *testing.T) {
	r := New(false)
	var buf bytes.Buffer
	r.dispatch(":load "+filepath.Join(t.TempDir(), "nope.json"), &buf)
	if !strings.Contains(buf.String(), "error:") {
		t.Errorf("expected an error message, got %q", buf.String())
	}
}

func TestLoadDiagnosticRendersCode(t *testing.T) {
	fixture := `{"decls":[{"kind":"let","name":"bad","value":{"kind":"var","name":"undefinedThing"}}]}`
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	r := New(false)
	var buf bytes.Buffer
	r.dispatch(":load "+path, &buf)
	if !strings.Contains(buf.String(), "undefined_variable") {
		t.Errorf("expected the undefined_variable diagnostic code, got %q", buf.String())
	}
}
