// Package form builds the tracker upload form from prepared artifacts and
// persists it between the prepare and upload invocations.
package form

import (
	"sort"

	"trackup/internal/release"
)

// Tracker upload form field names.
const (
	FieldSubmit         = "submit"
	FieldTorrent        = "file_input"
	FieldNFO            = "nfo_input"
	FieldType           = "type"
	FieldIMDB           = "imdblink"
	FieldFileMedia      = "file_media"
	FieldMediaReport    = "pastelog"
	FieldGroup          = "group"
	FieldRemasterTitle  = "remaster_title"
	FieldOtherEditions  = "othereditions"
	FieldMedia          = "media"
	FieldCodec          = "encoder"
	FieldDescription    = "release_desc"
	FieldUnknownGroup   = "unknown_group"
	FieldUserRelease    = "user"
	FieldRemaster       = "remaster"
	FieldUnknownEdition = "unknown"
)

// defaultRemasterTitle is what the tracker form carries when no edition
// applies; the remaster flag stays off so the value is inert.
const defaultRemasterTitle = "Director's Cut"

// Value is a single form field: either scalar text or a file blob.
type Value struct {
	Text     string `cbor:"text,omitempty"`
	FileName string `cbor:"file_name,omitempty"`
	Data     []byte `cbor:"data,omitempty"`
}

// Text builds a scalar field value.
func Text(s string) Value {
	return Value{Text: s}
}

// File builds a file-blob field value.
func File(name string, data []byte) Value {
	return Value{FileName: name, Data: data}
}

// IsFile reports whether the value is a file blob.
func (v Value) IsFile() bool {
	return v.FileName != ""
}

// Form is the assembled field-value mapping submitted to the tracker. Once
// assembled it is self-contained: the torrent content lives inside it and no
// external paths are referenced at upload time.
type Form struct {
	Fields map[string]Value `cbor:"fields"`
}

// FieldNames returns the form's field names in sorted order for deterministic
// serialization and submission.
func (f Form) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Inputs carries everything Assemble merges into the final form.
type Inputs struct {
	Release     release.Resolved
	IMDB        string
	TorrentName string
	TorrentData []byte
	MediaReport string
	Description string
}

// Assemble produces the canonical submission payload: the base fields first,
// then the conditional overrides in their fixed order (unknown group, user
// release, special edition). Later overrides may overwrite earlier values.
func Assemble(in Inputs) Form {
	fields := map[string]Value{
		FieldSubmit:        Text("true"),
		FieldTorrent:       File(in.TorrentName, in.TorrentData),
		FieldNFO:           Text(""),
		FieldType:          Text(string(in.Release.Type)),
		FieldIMDB:          Text(in.IMDB),
		FieldFileMedia:     Text(""),
		FieldMediaReport:   Text(in.MediaReport),
		FieldGroup:         Text(in.Release.Group),
		FieldRemasterTitle: Text(defaultRemasterTitle),
		FieldOtherEditions: Text(""),
		FieldMedia:         Text(string(in.Release.Media)),
		FieldCodec:         Text(string(in.Release.Codec)),
		FieldDescription:   Text(in.Description),
	}

	if in.Release.Group == release.GroupUnknown {
		fields[FieldUnknownGroup] = Text("on")
		fields[FieldGroup] = Text("")
	}
	if in.Release.UserRelease {
		fields[FieldUserRelease] = Text("on")
	}
	if in.Release.Edition != "" {
		fields[FieldRemaster] = Text("on")
		if release.KnownEdition(in.Release.Edition) {
			fields[FieldRemasterTitle] = Text(in.Release.Edition)
		} else {
			fields[FieldOtherEditions] = Text(in.Release.Edition)
			fields[FieldUnknownEdition] = Text("on")
		}
	}

	return Form{Fields: fields}
}
