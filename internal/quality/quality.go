// Package quality defines the download quality tiers offered by the backend.
package quality

// Code is the backend's quality selector value.
type Code string

const (
	MP3320    Code = "5"  // MP3 320 kbps
	FLAC16    Code = "6"  // FLAC 16-bit / 44.1 kHz
	FLAC24x96 Code = "7"  // FLAC 24-bit / 96 kHz
	FLAC24Max Code = "27" // FLAC 24-bit / 192 kHz
)

// Default is the tier selected when nothing else is configured.
const Default = FLAC16

// All lists the tiers in selector order.
var All = []Code{MP3320, FLAC16, FLAC24x96, FLAC24Max}

var labels = map[Code]string{
	MP3320:    "MP3 320 kbps",
	FLAC16:    "FLAC 16-bit/44.1kHz",
	FLAC24x96: "FLAC 24-bit/96kHz",
	FLAC24Max: "FLAC 24-bit/192kHz",
}

// Valid reports whether c is a known tier.
func (c Code) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Label returns the human-readable name of the tier.
func (c Code) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// IsLossy reports whether the tier produces MP3 output.
// Only the MP3 code is lossy; every other value is treated as FLAC.
func (c Code) IsLossy() bool {
	return c == MP3320
}

// Ext returns the file extension, including the dot, for files of this tier.
func (c Code) Ext() string {
	if c.IsLossy() {
		return ".mp3"
	}
	return ".flac"
}

// Next returns the tier after c in selector order, wrapping around.
func (c Code) Next() Code {
	for i, q := range All {
		if q == c {
			return All[(i+1)%len(All)]
		}
	}
	return Default
}

// Parse returns the code for s, or Default when s is not a known tier.
func Parse(s string) Code {
	c := Code(s)
	if c.Valid() {
		return c
	}
	return Default
}
