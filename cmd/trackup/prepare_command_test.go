package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/anacrolix/torrent/bencode"
	"github.com/anacrolix/torrent/metainfo"

	"trackup/internal/config"
	"trackup/internal/form"
	"trackup/internal/toolrun"
)

type fakeRunner struct {
	run func(ctx context.Context, name string, args ...string) (toolrun.Result, error)
}

func (f fakeRunner) Run(ctx context.Context, name string, args ...string) (toolrun.Result, error) {
	return f.run(ctx, name, args...)
}

func privateTorrentBytes(t *testing.T, name string) []byte {
	t.Helper()
	private := true
	info := metainfo.Info{
		Name:        name,
		PieceLength: 1 << 23,
		Pieces:      make([]byte, 20),
		Length:      1,
		Private:     &private,
	}
	infoBytes, err := bencode.Marshal(info)
	if err != nil {
		t.Fatal(err)
	}
	mi := metainfo.MetaInfo{InfoBytes: infoBytes}
	var buf bytes.Buffer
	if err := mi.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRunPrepareProducesLoadableForm(t *testing.T) {
	mediaDir := t.TempDir()
	media := filepath.Join(mediaDir, "Movie.2020.1080p.BluRay.x264-GRP.mkv")
	if err := os.WriteFile(media, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	gallery := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse gallery request: %v", err)
		}
		if got := r.FormValue("gallerytitle"); got != "Movie.2020.1080p.BluRay.x264-GRP.mkv" {
			t.Fatalf("unexpected gallery title %q", got)
		}
		count := len(r.MultipartForm.File["image[]"])
		fmt.Fprint(w, `{"files":[`)
		for i := 0; i < count; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"bbcode":"[img]%d[/img]"}`, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer gallery.Close()

	torrentBytes := privateTorrentBytes(t, "Movie.2020.1080p.BluRay.x264-GRP")
	runner := fakeRunner{run: func(ctx context.Context, name string, args ...string) (toolrun.Result, error) {
		switch name {
		case "mktorrent":
			outPath := args[len(args)-2]
			if err := os.WriteFile(outPath, torrentBytes, 0o644); err != nil {
				t.Fatal(err)
			}
			return toolrun.Result{}, nil
		case "mediainfo":
			return toolrun.Result{Output: []byte("General\nComplete name : Movie.2020.mkv\n")}, nil
		case "ffprobe":
			return toolrun.Result{Output: []byte("100.0\n")}, nil
		case "ffmpeg":
			outPath := args[len(args)-1]
			if err := os.WriteFile(outPath, []byte("png"), 0o644); err != nil {
				t.Fatal(err)
			}
			return toolrun.Result{}, nil
		}
		t.Fatalf("unexpected tool %q", name)
		return toolrun.Result{}, nil
	}}

	cfg := config.Default()
	cfg.Gallery.BaseURL = gallery.URL
	cfg.Screenshots.WorkDir = t.TempDir()

	formPath := filepath.Join(t.TempDir(), "movie.form")
	opts := prepareOptions{
		mediaPath: media,
		formPath:  formPath,
		imdb:      "tt0113243",
		passkey:   "passkey123",
		screens:   4,
	}
	if err := runPrepare(context.Background(), &cfg, nil, runner, opts); err != nil {
		t.Fatalf("runPrepare: %v", err)
	}

	loaded, err := form.Load(formPath)
	if err != nil {
		t.Fatalf("load prepared form: %v", err)
	}
	if got := loaded.Fields[form.FieldType].Text; got != "Movies" {
		t.Fatalf("unexpected type %q", got)
	}
	if got := loaded.Fields[form.FieldMedia].Text; got != "Blu-ray" {
		t.Fatalf("unexpected media %q", got)
	}
	if got := loaded.Fields[form.FieldCodec].Text; got != "x264" {
		t.Fatalf("unexpected codec %q", got)
	}
	if got := loaded.Fields[form.FieldGroup].Text; got != "GRP" {
		t.Fatalf("unexpected group %q", got)
	}
	if got := loaded.Fields[form.FieldDescription].Text; got != "[img]0[/img][img]1[/img][img]2[/img][img]3[/img]" {
		t.Fatalf("unexpected description %q", got)
	}
	torrent := loaded.Fields[form.FieldTorrent]
	if !torrent.IsFile() || !bytes.Equal(torrent.Data, torrentBytes) {
		t.Fatal("form does not embed the torrent bytes")
	}
}

func TestRunPrepareRejectsUnknownExplicitCodec(t *testing.T) {
	media := filepath.Join(t.TempDir(), "Movie.2020.1080p.BluRay.x264-GRP.mkv")
	if err := os.WriteFile(media, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	opts := prepareOptions{
		mediaPath: media,
		formPath:  filepath.Join(t.TempDir(), "movie.form"),
		imdb:      "tt0113243",
		passkey:   "pk",
		codec:     "AV1",
		screens:   4,
	}
	runner := fakeRunner{run: func(ctx context.Context, name string, args ...string) (toolrun.Result, error) {
		t.Fatalf("no tool should run for invalid attributes, got %q", name)
		return toolrun.Result{}, nil
	}}
	if err := runPrepare(context.Background(), &cfg, nil, runner, opts); err == nil {
		t.Fatal("expected validation error for codec outside the closed set")
	}
}
