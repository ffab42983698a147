package bundle

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"
)

func TestArchiveRoundTrip(t *testing.T) {
	mod := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	data, err := Archive([]Entry{
		{Name: "mcq/abc.md", Modified: mod, Data: []byte("# MCQ Quiz")},
		{Name: "/flashcard/abc.md", Modified: mod, Data: []byte("# Flashcards")},
	})
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	want := map[string]string{"mcq/abc.md": "# MCQ Quiz", "flashcard/abc.md": "# Flashcards"}
	if len(zr.File) != len(want) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(want))
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		got, _ := io.ReadAll(rc)
		rc.Close()
		if string(got) != want[f.Name] {
			t.Fatalf("%s = %q, want %q", f.Name, got, want[f.Name])
		}
	}
}

func TestArchiveRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"duplicate", []Entry{{Name: "a.md"}, {Name: "./a.md"}}},
		{"escape", []Entry{{Name: "../a.md"}}},
		{"empty", []Entry{{Name: ""}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Archive(tc.entries); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
