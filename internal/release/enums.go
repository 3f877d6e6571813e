package release

// ContentType classifies what kind of content a release carries.
type ContentType string

const (
	ContentMovies  ContentType = "Movies"
	ContentTVShows ContentType = "TV-Shows"
)

// ContentTypes is the closed set the tracker accepts.
var ContentTypes = []ContentType{ContentMovies, ContentTVShows}

func (t ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MediaType identifies the source media of a release.
type MediaType string

const (
	MediaBluRay    MediaType = "Blu-ray"
	MediaHDDVD     MediaType = "HD-DVD"
	MediaHDTV      MediaType = "HDTV"
	MediaWEBDL     MediaType = "WEB-DL"
	MediaWEBRip    MediaType = "WEBRip"
	MediaDTheater  MediaType = "DTheater"
	MediaXDCAM     MediaType = "XDCAM"
	MediaUHDBluRay MediaType = "UHD Blu-ray"
)

// MediaTypes is the closed set the tracker accepts. Order matters for
// detection: entries are matched as literal name markers in this order after
// the combined UHD marker and the plain BluRay marker have been tried.
var MediaTypes = []MediaType{
	MediaBluRay,
	MediaHDDVD,
	MediaHDTV,
	MediaWEBDL,
	MediaWEBRip,
	MediaDTheater,
	MediaXDCAM,
	MediaUHDBluRay,
}

func (m MediaType) Valid() bool {
	for _, known := range MediaTypes {
		if m == known {
			return true
		}
	}
	return false
}

// Codec identifies the video codec classification of a release.
type Codec string

const (
	CodecX264       Codec = "x264"
	CodecVC1Remux   Codec = "VC-1 Remux"
	CodecH264Remux  Codec = "h.264 Remux"
	CodecMPEG2Remux Codec = "MPEG2 Remux"
	CodecH265Remux  Codec = "h.265 Remux"
	CodecX265       Codec = "x265"
)

// Codecs is the closed set the tracker accepts, in detection order.
var Codecs = []Codec{CodecX264, CodecVC1Remux, CodecH264Remux, CodecMPEG2Remux, CodecH265Remux, CodecX265}

func (c Codec) Valid() bool {
	for _, known := range Codecs {
		if c == known {
			return true
		}
	}
	return false
}

// GroupUnknown is the operator-facing sentinel for an unknown release group.
const GroupUnknown = "UNKNOWN"

// KnownEditions lists the curated edition names the tracker recognizes as
// remaster titles. Anything else is routed through the other-editions field.
var KnownEditions = []string{
	"Director's Cut",
	"Unrated",
	"Extended Edition",
	"2 in 1",
	"The Criterion Collection",
}

// KnownEdition reports whether label is one of the curated edition names.
func KnownEdition(label string) bool {
	for _, known := range KnownEditions {
		if label == known {
			return true
		}
	}
	return false
}
