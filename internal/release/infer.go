package release

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"trackup/internal/fileutil"
	"trackup/internal/services"
)

// seasonMarker is the season-pack pattern that distinguishes TV releases.
const seasonMarker = ".S0"

// uhdMarker is the combined marker checked before the plain BluRay marker.
const uhdMarker = "UHD.BluRay"

// Attributes carries the operator-supplied release attributes. Fields left at
// their auto-detect zero value are filled by Infer.
type Attributes struct {
	Type        Option[ContentType]
	Media       Option[MediaType]
	Codec       Option[Codec]
	Group       Option[string]
	Edition     string
	UserRelease bool
	Screens     int
}

// Resolved is the fully inferred and validated attribute set.
type Resolved struct {
	Type        ContentType
	Media       MediaType
	Codec       Codec
	Group       string
	Edition     string
	UserRelease bool
	Screens     int
}

// Infer resolves every auto-detect attribute from the release path and
// validates the result against the tracker's closed sets. Explicit values are
// never overridden; the Amazon/Netflix edition auto-tag for movies is the one
// exception and overwrites any prior edition label.
func Infer(path string, attrs Attributes) (Resolved, error) {
	if _, err := os.Stat(path); err != nil {
		return Resolved{}, services.Wrap(services.ErrValidation, "release", "infer", "media path", err)
	}

	name := filepath.Base(filepath.Clean(path))
	resolved := Resolved{
		Edition:     attrs.Edition,
		UserRelease: attrs.UserRelease,
		Screens:     attrs.Screens,
	}

	if explicit, ok := attrs.Type.Get(); ok {
		resolved.Type = explicit
	} else {
		resolved.Type = inferType(name)
	}

	// The remaining detectors read the first child of directory inputs.
	childName := name
	if !attrs.Media.IsExplicit() || !attrs.Codec.IsExplicit() || !attrs.Group.IsExplicit() {
		child, err := fileutil.ResolveChild(path)
		if err != nil {
			return Resolved{}, services.Wrap(services.ErrDetection, "release", "infer", "resolve directory entry", err)
		}
		childName = filepath.Base(child)
	}

	if explicit, ok := attrs.Group.Get(); ok {
		resolved.Group = explicit
	} else {
		resolved.Group = inferGroup(childName)
	}

	if explicit, ok := attrs.Media.Get(); ok {
		resolved.Media = explicit
	} else {
		media, err := inferMedia(childName)
		if err != nil {
			return Resolved{}, err
		}
		resolved.Media = media
	}

	if explicit, ok := attrs.Codec.Get(); ok {
		resolved.Codec = explicit
	} else {
		resolved.Codec = normalizeWebDLCodec(inferCodec(childName), resolved.Media, name)
	}

	if resolved.Type == ContentMovies {
		if edition := inferEdition(name); edition != "" {
			resolved.Edition = edition
		}
	}

	if err := validate(resolved); err != nil {
		return Resolved{}, err
	}
	return resolved, nil
}

func inferType(name string) ContentType {
	if strings.Contains(name, seasonMarker) {
		return ContentTVShows
	}
	return ContentMovies
}

func inferMedia(name string) (MediaType, error) {
	if strings.Contains(name, uhdMarker) {
		return MediaUHDBluRay, nil
	}
	if strings.Contains(name, "BluRay") {
		return MediaBluRay, nil
	}
	for _, media := range MediaTypes {
		if strings.Contains(name, string(media)) {
			return media, nil
		}
	}
	return "", services.Wrap(services.ErrDetection, "release", "infer", fmt.Sprintf("unable to detect media type from %q", name), nil)
}

func inferCodec(name string) Codec {
	for _, codec := range Codecs {
		if strings.Contains(name, string(codec)) {
			return codec
		}
	}
	return ""
}

// normalizeWebDLCodec rewrites WEB-DL codecs to their remux classification.
// The tracker files WEB-DL content under remux codecs even when the release
// name advertises x264/x265. Only auto-detected codecs are rewritten.
func normalizeWebDLCodec(codec Codec, media MediaType, name string) Codec {
	if media != MediaWEBDL {
		return codec
	}
	if codec == CodecX264 || strings.Contains(name, "H.264") {
		codec = CodecH264Remux
	}
	if codec == CodecX265 || strings.Contains(name, "H.265") || strings.Contains(name, "HEVC") {
		codec = CodecH265Remux
	}
	return codec
}

func inferGroup(name string) string {
	stem := fileutil.Stem(name)
	if idx := strings.LastIndex(stem, "-"); idx >= 0 {
		return stem[idx+1:]
	}
	return stem
}

func inferEdition(name string) string {
	edition := ""
	if strings.Contains(name, "AMZN") {
		edition = "Amazon"
	}
	if strings.Contains(name, "Netflix") || strings.Contains(name, ".NF.") {
		edition = "Netflix"
	}
	return edition
}

func validate(resolved Resolved) error {
	if !resolved.Type.Valid() {
		return services.Wrap(services.ErrValidation, "release", "validate", fmt.Sprintf("content type %q outside closed set", resolved.Type), nil)
	}
	if !resolved.Media.Valid() {
		return services.Wrap(services.ErrValidation, "release", "validate", fmt.Sprintf("media type %q outside closed set", resolved.Media), nil)
	}
	if !resolved.Codec.Valid() {
		return services.Wrap(services.ErrValidation, "release", "validate", fmt.Sprintf("codec %q outside closed set", resolved.Codec), nil)
	}
	if resolved.Screens <= 0 {
		return services.Wrap(services.ErrValidation, "release", "validate", fmt.Sprintf("screenshot count %d must be positive", resolved.Screens), nil)
	}
	return nil
}
