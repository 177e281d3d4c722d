package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	s, err := NewImages(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	name, err := s.Save(strings.NewReader("fake-png-bytes"), "Cover Photo.PNG")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("expected lowercased .png suffix, got %q", name)
	}
	if strings.Contains(name, "Cover") {
		t.Errorf("original name leaked into %q", name)
	}

	b, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "fake-png-bytes" {
		t.Errorf("stored content mismatch: %q", b)
	}

	s.Remove(name)
	if _, err := os.Stat(filepath.Join(s.Dir, name)); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove")
	}
}

func TestSaveRejectsUnknownExt(t *testing.T) {
	s, err := NewImages(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(strings.NewReader("x"), "script.sh"); err == nil {
		t.Fatal("expected error for .sh upload")
	}
}

func TestRemoveIgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := NewImages(filepath.Join(dir, "img"))
	if err != nil {
		t.Fatal(err)
	}
	victim := filepath.Join(dir, "victim.txt")
	if err := os.WriteFile(victim, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	s.Remove("../victim.txt")
	if _, err := os.Stat(victim); err != nil {
		t.Errorf("traversal removed file outside dir: %v", err)
	}
}
