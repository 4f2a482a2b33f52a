package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/blackwell-systems/libractl/internal/util"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "sub", "session.yml")

	if err := util.WriteFileAtomic(dst, []byte("token: a\n"), 0600, 0700); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := util.WriteFileAtomic(dst, []byte("token: b\n"), 0600, 0700); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile dst: %v", err)
	}
	if string(got) != "token: b\n" {
		t.Errorf("content = %q, want %q", string(got), "token: b\n")
	}
	fi, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if perm := fi.Mode().Perm(); perm != 0600 {
		t.Errorf("perm = %o, want 600", perm)
	}
	if _, err := os.Stat(dst + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestWriteFileAtomic_BadDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFileAtomic(filepath.Join(blocker, "x.yml"), []byte("x"), 0600, 0700); err == nil {
		t.Error("expected error writing under a regular file, got nil")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := util.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	fi, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("Stat after EnsureDir: %v", err)
	}
	if !fi.IsDir() {
		t.Error("EnsureDir path is not a directory")
	}
}

func TestIsTTY_UnderTest(t *testing.T) {
	// go test captures stdout, so it is never a terminal here.
	if util.IsTTY() {
		t.Skip("stdout is a terminal")
	}
}

func TestInitColor_NoColorEnv(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	color.NoColor = false
	t.Setenv("NO_COLOR", "")
	util.InitColor(false)
	if !color.NoColor {
		t.Error("NO_COLOR set but color output still on")
	}
}
