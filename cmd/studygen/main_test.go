package main

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"tubestudy/internal/domain"
	"tubestudy/internal/studygen"
)

type stubGenerator struct {
	mu       sync.Mutex
	requests []studygen.Request
}

func (s *stubGenerator) Generate(_ context.Context, req studygen.Request) (*domain.GenerationResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	switch req.URL {
	case "https://example.com/nope":
		return nil, &domain.StageError{Stage: domain.StageExtract, Kind: domain.ErrInvalidURL}
	case "https://www.youtube.com/watch?v=broken":
		return nil, &domain.StageError{Stage: domain.StageModelInit, Kind: domain.ErrModelInitialization}
	}
	return &domain.GenerationResult{
		Kind:             req.Kind,
		VideoID:          "dQw4w9WgXcQ",
		Content:          string(req.Kind) + " content",
		TranscriptLength: 42,
		Model:            "gemini-test",
	}, nil
}

func useStubGenerator(t *testing.T) *stubGenerator {
	t.Helper()
	stub := &stubGenerator{}
	closed := false
	prev := openGenerator
	openGenerator = func(context.Context) (generator, func(), error) {
		return stub, func() { closed = true }, nil
	}
	t.Cleanup(func() {
		openGenerator = prev
		if !closed {
			t.Error("generator was not released")
		}
	})
	return stub
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKind domain.ArtifactKind
		want     []string
		wantErr  string
	}{
		{
			name:     "mcq plain",
			args:     []string{"mcq", "https://youtu.be/dQw4w9WgXcQ"},
			wantKind: domain.ArtifactMCQ,
			want:     []string{"mcq content\n"},
		},
		{
			name:     "flashcards markdown",
			args:     []string{"flashcards", "--markdown", "https://youtu.be/dQw4w9WgXcQ"},
			wantKind: domain.ArtifactFlashcard,
			want: []string{
				"# Flashcards\n",
				"- Video: https://www.youtube.com/watch?v=dQw4w9WgXcQ\n",
				"- Model: gemini-test\n",
				"flashcard content\n",
			},
		},
		{
			name:     "invalid url",
			args:     []string{"mcq", "https://example.com/nope"},
			wantKind: domain.ArtifactMCQ,
			wantErr:  "could not process the video",
		},
		{
			name:     "server side failure",
			args:     []string{"flashcards", "https://www.youtube.com/watch?v=broken"},
			wantKind: domain.ArtifactFlashcard,
			wantErr:  "model initialization failed",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := useStubGenerator(t)
			out, err := runCmd(t, tc.args...)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("err = %v, want %q", err, tc.wantErr)
				}
			} else if err != nil {
				t.Fatalf("execute: %v", err)
			}
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Fatalf("output %q missing %q", out, w)
				}
			}
			if len(stub.requests) != 1 || stub.requests[0].Kind != tc.wantKind {
				t.Fatalf("requests = %+v, want one %s request", stub.requests, tc.wantKind)
			}
			if stub.requests[0].RequestID == "" {
				t.Fatal("request id not set")
			}
		})
	}
}

func TestBundleCommand(t *testing.T) {
	stub := useStubGenerator(t)
	output := filepath.Join(t.TempDir(), "study.zip")

	out, err := runCmd(t, "bundle", "-o", output, "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Wrote "+output+" (2 documents)") {
		t.Fatalf("unexpected output %q", out)
	}
	if len(stub.requests) != 2 {
		t.Fatalf("expected two generations, got %d", len(stub.requests))
	}

	zr, err := zip.OpenReader(output)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()

	contents := map[string]string{}
	var names []string
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		names = append(names, f.Name)
		contents[f.Name] = string(data)
	}
	sort.Strings(names)
	want := []string{"flashcard/dQw4w9WgXcQ.md", "mcq/dQw4w9WgXcQ.md"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	if !strings.HasPrefix(contents["mcq/dQw4w9WgXcQ.md"], "# MCQ Quiz\n") {
		t.Fatalf("mcq entry = %q", contents["mcq/dQw4w9WgXcQ.md"])
	}
	if !strings.Contains(contents["flashcard/dQw4w9WgXcQ.md"], "flashcard content") {
		t.Fatalf("flashcard entry = %q", contents["flashcard/dQw4w9WgXcQ.md"])
	}
}

func TestBundleStopsOnFailure(t *testing.T) {
	stub := useStubGenerator(t)
	output := filepath.Join(t.TempDir(), "study.zip")

	_, err := runCmd(t, "bundle", "-o", output, "https://example.com/nope")
	if err == nil || !strings.Contains(err.Error(), "mcq:") {
		t.Fatalf("err = %v, want mcq failure", err)
	}
	if len(stub.requests) != 1 {
		t.Fatalf("expected bundle to stop after first failure, got %d requests", len(stub.requests))
	}
	if _, statErr := zip.OpenReader(output); statErr == nil {
		t.Fatal("zip written despite failure")
	}
}
