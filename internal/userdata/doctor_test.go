package userdata

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckUserdata_ReportsMissing(t *testing.T) {
	clearPathEnv(t)
	tmp := filepath.Join(t.TempDir(), "forge")
	t.Setenv("FORGE_CONFIG_DIR", tmp)

	var buf bytes.Buffer
	problems, err := CheckUserdata(&buf, false)
	if err != nil {
		t.Fatalf("CheckUserdata failed: %v", err)
	}
	if problems != 3 {
		t.Errorf("problems = %d, want 3", problems)
	}
	if !strings.Contains(buf.String(), "[MISS]") {
		t.Error("expected [MISS] in output")
	}
	if !strings.Contains(buf.String(), "forge init") {
		t.Error("expected a hint to run forge init")
	}
}

func TestCheckUserdata_Fix(t *testing.T) {
	clearPathEnv(t)
	tmp := filepath.Join(t.TempDir(), "forge")
	t.Setenv("FORGE_CONFIG_DIR", tmp)

	var buf bytes.Buffer
	if _, err := CheckUserdata(&buf, true); err != nil {
		t.Fatalf("CheckUserdata(fix) failed: %v", err)
	}
	assertDirExists(t, filepath.Join(tmp, "templates"))
	assertFileExists(t, filepath.Join(tmp, "config.yaml"))

	var again bytes.Buffer
	problems, err := CheckUserdata(&again, false)
	if err != nil {
		t.Fatal(err)
	}
	if problems != 0 {
		t.Errorf("problems after fix = %d, want 0\n%s", problems, again.String())
	}
}
