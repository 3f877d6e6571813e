package form

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trackup/internal/services"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	original := Assemble(baseInputs())
	path := filepath.Join(t.TempDir(), "movie.form")

	if err := Save(original, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Fields) != len(original.Fields) {
		t.Fatalf("field count changed: %d != %d", len(loaded.Fields), len(original.Fields))
	}
	for name, want := range original.Fields {
		got, ok := loaded.Fields[name]
		if !ok {
			t.Fatalf("field %q lost in round trip", name)
		}
		if got.Text != want.Text || got.FileName != want.FileName || !bytes.Equal(got.Data, want.Data) {
			t.Fatalf("field %q changed: %+v != %+v", name, got, want)
		}
	}
}

func TestLoadMalformedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.form")
	if err := os.WriteFile(path, []byte("not a serialized form"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, services.ErrCorruptForm) {
		t.Fatalf("expected ErrCorruptForm, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.form")); err == nil {
		t.Fatal("expected error for missing form file")
	}
}

func TestExamineRedactsTorrentBlob(t *testing.T) {
	torrentBytes := []byte{0x64, 0x38, 0x3a, 0xff, 0x00}
	in := baseInputs()
	in.TorrentData = torrentBytes
	f := Assemble(in)

	display := Examine(f)
	if display[FieldTorrent] != TorrentPlaceholder {
		t.Fatalf("torrent field not redacted: %q", display[FieldTorrent])
	}
	for name, value := range display {
		if bytes.Contains([]byte(value), torrentBytes) {
			t.Fatalf("field %q leaks raw torrent bytes", name)
		}
	}
	if display[FieldType] != "Movies" {
		t.Fatalf("scalar field lost: %q", display[FieldType])
	}
}
