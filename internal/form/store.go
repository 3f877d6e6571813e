package form

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"trackup/internal/services"
)

// TorrentPlaceholder replaces the torrent blob in examine output.
const TorrentPlaceholder = "<torrent_content>"

// Save serializes the form opaquely to path.
func Save(f Form, path string) error {
	data, err := cbor.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write form %s: %w", path, err)
	}
	return nil
}

// Load reads a persisted form back into memory.
func Load(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Form{}, fmt.Errorf("read form %s: %w", path, err)
	}
	var f Form
	if err := cbor.Unmarshal(data, &f); err != nil {
		return Form{}, services.Wrap(services.ErrCorruptForm, "form", "load", path, err)
	}
	if f.Fields == nil {
		return Form{}, services.Wrap(services.ErrCorruptForm, "form", "load", fmt.Sprintf("%s: no field mapping", path), nil)
	}
	return f, nil
}

// Examine produces a display copy where every field is reduced to its text
// value and file blobs are replaced with a fixed placeholder. Raw binary
// content never appears in the result.
func Examine(f Form) map[string]string {
	display := make(map[string]string, len(f.Fields))
	for name, value := range f.Fields {
		if value.IsFile() {
			display[name] = TorrentPlaceholder
			continue
		}
		display[name] = value.Text
	}
	return display
}
