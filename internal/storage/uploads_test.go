package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"episode.mp3", true},
		{"episode.MP3", true},
		{"raw.wav", true},
		{"interview.m4a", true},
		{"show.ogg", true},
		{"notes.txt", false},
		{"video.mp4", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsAudioFile(tt.name); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUploadStoreSave(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	id, path, size, err := store.Save("episode.mp3", strings.NewReader("fake mp3 bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Error("empty id")
	}
	if size != int64(len("fake mp3 bytes")) {
		t.Errorf("size = %d", size)
	}
	if filepath.Ext(path) != ".mp3" {
		t.Errorf("stored path %q should keep the audio extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fake mp3 bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestUploadStoreRejectsUnsupportedType(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := store.Save("malware.exe", strings.NewReader("x")); err == nil {
		t.Error("expected rejection of non-audio extension")
	}
}

func TestUploadStoreRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := store.Save("silent.mp3", strings.NewReader("")); err == nil {
		t.Error("expected rejection of empty file")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Error("rejected upload left a file behind")
	}
}

func TestUploadStoreRemoveRefusesOutsideBase(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	outside := filepath.Join(t.TempDir(), "victim.mp3")
	if err := os.WriteFile(outside, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := store.Remove(outside); err == nil {
		t.Error("expected refusal to remove file outside base path")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Error("file outside base path was removed")
	}
}
