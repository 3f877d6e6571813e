package main

import (
	"bytes"
	"strings"
	"testing"

	"trackup/internal/form"
	"trackup/internal/release"
)

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCommand()
	want := map[string]bool{"prepare": false, "examine": false, "upload": false, "config": false, "deps": false}
	for _, cmd := range root.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("command %q not registered", name)
		}
	}
}

func TestPrepareRequiresFlags(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"prepare", "/tmp/media.mkv", "/tmp/out.form"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error when --imdb and --passkey are missing")
	}
}

func TestUploadRequiresCookies(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"upload", "/tmp/out.form"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error when --cookies is missing")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Field", "Value"}, [][]string{{"type", "Movies"}, {"group"}})
	if !strings.Contains(out, "type") || !strings.Contains(out, "Movies") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}

func TestExamineTableRedaction(t *testing.T) {
	assembled := form.Assemble(form.Inputs{
		Release: release.Resolved{
			Type:  release.ContentMovies,
			Media: release.MediaBluRay,
			Codec: release.CodecX264,
			Group: "GRP",
		},
		TorrentName: "movie.torrent",
		TorrentData: []byte{0xde, 0xad},
	})
	display := form.Examine(assembled)
	rows := make([][]string, 0, len(display))
	for _, name := range assembled.FieldNames() {
		rows = append(rows, []string{name, display[name]})
	}
	out := renderTable([]string{"Field", "Value"}, rows)
	if !strings.Contains(out, form.TorrentPlaceholder) {
		t.Fatalf("examine table must show the placeholder:\n%s", out)
	}
	if strings.Contains(out, "\xde\xad") {
		t.Fatal("examine table leaks torrent bytes")
	}
}
