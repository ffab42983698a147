package infra

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestSplitMarker(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantMarker string
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "valid marker",
			query:      "--sql 8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7\nselect 1;",
			wantMarker: "8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7",
			wantBody:   "select 1;",
		},
		{
			name:       "leading whitespace",
			query:      "\n  --sql 8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7\nselect 1;\n",
			wantMarker: "8a8e0d52-7f5d-4f21-8b7d-f7d4b821eed7",
			wantBody:   "select 1;",
		},
		{name: "missing marker", query: "select 1;", wantErr: true},
		{name: "uppercase uuid rejected", query: "--sql 8A8E0D52-7F5D-4F21-8B7D-F7D4B821EED7\nselect 1;", wantErr: true},
		{name: "empty", query: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			marker, body, err := SplitMarker(tc.query)
			if tc.wantErr {
				if !errors.Is(err, ErrMissingMarker) {
					t.Fatalf("SplitMarker() err = %v, want ErrMissingMarker", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitMarker() unexpected error: %v", err)
			}
			if marker != tc.wantMarker || body != tc.wantBody {
				t.Fatalf("SplitMarker() = (%q, %q), want (%q, %q)", marker, body, tc.wantMarker, tc.wantBody)
			}
		})
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)) {
		t.Fatal("expected wrapped ErrNoRows to be detected")
	}
	if IsNoRows(errors.New("other")) {
		t.Fatal("unexpected match for unrelated error")
	}
}
