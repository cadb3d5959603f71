package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/camconv/internal/config"
)

func TestScan_ClassifiesByExtension(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	touch(t, dir, "MOV001.MOD")
	touch(t, dir, "MOV002.mod")
	touch(t, dir, "MOV001.MOI")
	touch(t, dir, "PRG001.PGI")
	touch(t, dir, "holiday.mp4")
	touch(t, dir, "readme.txt")

	dirs, err := Scan(&cfg, dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(dirs) != 1 {
		t.Fatalf("got %d directories, want 1", len(dirs))
	}

	wantConv := []string{"MOV001.MOD", "MOV002.mod"}
	wantSide := []string{"MOV001.MOI", "PRG001.PGI"}
	if !sliceEqual(dirs[0].Convertible, wantConv) {
		t.Errorf("Convertible = %v, want %v", dirs[0].Convertible, wantConv)
	}
	if !sliceEqual(dirs[0].Sidecars, wantSide) {
		t.Errorf("Sidecars = %v, want %v", dirs[0].Sidecars, wantSide)
	}
}

func TestScan_PrunesOriginals(t *testing.T) {
	// A convertible file inside a previously created originals subfolder
	// must never surface as a job again.
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	touch(t, dir, "MOV001.MOD")
	for _, sub := range []string{"Original files", "ORIGINAL FILES", "original files"} {
		path := filepath.Join(dir, sub)
		if err := os.MkdirAll(path, 0o755); err != nil {
			// Case-insensitive filesystems collapse these; creating any one is enough.
			continue
		}
		touch(t, path, "MOV999.MOD")
	}

	dirs, err := Scan(&cfg, dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(dirs) != 1 {
		t.Fatalf("got %d directories, want 1 (originals pruned)", len(dirs))
	}
	if !sliceEqual(dirs[0].Convertible, []string{"MOV001.MOD"}) {
		t.Errorf("Convertible = %v, want only MOV001.MOD", dirs[0].Convertible)
	}
}

func TestScan_SidecarOnlyDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	touch(t, dir, "MOV001.MOI")

	dirs, err := Scan(&cfg, dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(dirs) != 1 || len(dirs[0].Convertible) != 0 || len(dirs[0].Sidecars) != 1 {
		t.Errorf("dirs = %+v, want one sidecar-only entry", dirs)
	}
}

func TestScan_Recursive(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "PRG001"), 0o755)
	os.MkdirAll(filepath.Join(dir, "PRG002"), 0o755)
	touch(t, filepath.Join(dir, "PRG002"), "MOV001.MOD")
	touch(t, filepath.Join(dir, "PRG001"), "MOV002.MOD")
	touch(t, filepath.Join(dir, "PRG001"), "MOV001.MOD")

	dirs, err := Scan(&cfg, dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("got %d directories, want 2", len(dirs))
	}
	// WalkDir is lexical, so PRG001 comes first and names are sorted within.
	if filepath.Base(dirs[0].Dir) != "PRG001" {
		t.Errorf("first dir = %s, want PRG001", dirs[0].Dir)
	}
	if !sliceEqual(dirs[0].Convertible, []string{"MOV001.MOD", "MOV002.MOD"}) {
		t.Errorf("PRG001 files = %v", dirs[0].Convertible)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := Scan(&cfg, filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Scan of a missing root should fail")
	}
}

func TestWalkErrorPolicy(t *testing.T) {
	// Only root enumeration failure is fatal; an unreadable subdirectory is
	// skipped so the rest of the tree still converts.
	root := filepath.Join("media", "camcorder")
	if err := walkErr(root, root, fs.ErrPermission); err == nil {
		t.Error("root enumeration failure must abort the scan")
	}
	locked := filepath.Join(root, "locked")
	if err := walkErr(root, locked, fs.ErrPermission); err != filepath.SkipDir {
		t.Errorf("subdirectory error = %v, want fs.SkipDir", err)
	}
}

func TestCountConvertible_Idempotent(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	touch(t, dir, "MOV001.MOD")
	touch(t, filepath.Join(dir, "sub"), "MOV002.MOD")
	touch(t, dir, "MOV001.MOI")

	first, err := CountConvertible(&cfg, dir)
	if err != nil {
		t.Fatalf("CountConvertible: %v", err)
	}
	second, err := CountConvertible(&cfg, dir)
	if err != nil {
		t.Fatalf("CountConvertible: %v", err)
	}
	if first != 2 || second != 2 {
		t.Errorf("counts = %d, %d; want 2, 2", first, second)
	}
}

// --- Helpers ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
