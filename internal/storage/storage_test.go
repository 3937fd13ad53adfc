package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKey(t *testing.T) {
	got := Key("Guest", "memories")
	want := "mindbackup_v1_memories_Guest"
	if got != want {
		t.Errorf("Key: got %q, want %q", got, want)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

// roundtrip exercises the shared KV contract against any backend.
func roundtrip(t *testing.T, kv KV) {
	t.Helper()

	if _, found, err := kv.Get("missing"); err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	if err := kv.Set("k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found, err := kv.Get("k")
	if err != nil || !found {
		t.Fatalf("Get after Set: found=%v err=%v", found, err)
	}
	if !bytes.Equal(got, []byte("v1")) {
		t.Errorf("Get: got %q, want v1", got)
	}

	// Overwrite.
	if err := kv.Set("k", []byte("v2")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _, _ = kv.Get("k")
	if !bytes.Equal(got, []byte("v2")) {
		t.Errorf("overwrite: got %q, want v2", got)
	}

	if err := kv.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := kv.Get("k"); found {
		t.Error("key still present after Delete")
	}

	// Deleting a missing key is not an error.
	if err := kv.Delete("k"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestMemKV_Roundtrip(t *testing.T) {
	roundtrip(t, NewMemKV())
}

func TestFileKV_Roundtrip(t *testing.T) {
	kv, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	roundtrip(t, kv)
}

func TestSQLiteKV_Roundtrip(t *testing.T) {
	kv, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	roundtrip(t, kv)
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	kv, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := kv.Set("k", []byte("persisted")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	kv.Close()

	kv2, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv2.Close()

	got, found, err := kv2.Get("k")
	if err != nil || !found {
		t.Fatalf("Get after reopen: found=%v err=%v", found, err)
	}
	if string(got) != "persisted" {
		t.Errorf("got %q", got)
	}
}

func TestFileKV_SanitisesKeys(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	// A hostile user ID must not escape the data directory.
	key := Key("../../etc/passwd", "profile")
	if err := kv.Set(key, []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file in data dir, got %d", len(entries))
	}
	if name := entries[0].Name(); strings.ContainsAny(name, "/\\") {
		t.Errorf("unsafe file name %q", name)
	}

	got, found, err := kv.Get(key)
	if err != nil || !found || string(got) != "x" {
		t.Errorf("roundtrip through sanitised name failed: %q %v %v", got, found, err)
	}
}

func TestFileKV_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	kv, _ := OpenFile(dir)

	for i := 0; i < 5; i++ {
		if err := kv.Set("k", []byte("v")); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".kv-") {
			t.Errorf("stray temp file %s", filepath.Join(dir, e.Name()))
		}
	}
}
