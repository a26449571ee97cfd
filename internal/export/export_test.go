package export

import (
	"path/filepath"
	"testing"

	"github.com/bookerang/bookerang/internal/books"
)

func snapshot() []books.Book {
	return []books.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Cover: "/uploads/1.jpg", IsAvailable: true, OwnerID: 2, OwnerName: "reader42", Distance: "0.5 miles away", State: "Available"},
		{ID: 2, Title: "Neuromancer", Author: "William Gibson", Cover: books.PlaceholderCover, IsAvailable: false, OwnerName: "Unknown Owner", Distance: "Unknown distance"},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, ext := range []string{".jsonl", ".parquet"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snapshot"+ext)
			want := snapshot()

			if err := Save(path, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if len(got) != len(want) {
				t.Fatalf("Expected %d records, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("Record %d mismatch:\nexpected %+v\ngot      %+v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestUnsupportedExtension(t *testing.T) {
	if err := Save("snapshot.csv", snapshot()); err == nil {
		t.Error("Expected error for unsupported extension")
	}
	if _, err := Load("snapshot.csv"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("Expected error for missing file")
	}
}
