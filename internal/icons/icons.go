package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	TokenValid   string
	TokenAdvise  string
	TokenUrgent  string
	TokenExpired string
	Play         string
	Stop         string
	Loading      string
	Failed       string
	Download     string
	Lyrics       string
	Genius       string
	Spotify      string
}

var (
	nerdIcons = Icons{
		TokenValid:   "\uf00c",     // nf-fa-check
		TokenAdvise:  "\uf0e7",     // nf-fa-bolt
		TokenUrgent:  "\uf071",     // nf-fa-warning
		TokenExpired: "\uf00d",     // nf-fa-times
		Play:         "\uf04b",     // nf-fa-play
		Stop:         "\uf04d",     // nf-fa-stop
		Loading:      "\uf110",     // nf-fa-spinner
		Failed:       "\uf05e",     // nf-fa-ban
		Download:     "\uf019",     // nf-fa-download
		Lyrics:       "\U000f0388", // nf-md-music_note_eighth
		Genius:       "\uf005",     // nf-fa-star
		Spotify:      "\uf1bc",     // nf-fa-spotify
	}

	unicodeIcons = Icons{
		TokenValid:   "✅",
		TokenAdvise:  "⚡",
		TokenUrgent:  "⚠",
		TokenExpired: "❌",
		Play:         "▶",
		Stop:         "■",
		Loading:      "…",
		Failed:       "✖",
		Download:     "⬇",
		Lyrics:       "♪",
		Genius:       "★",
		Spotify:      "●",
	}

	noneIcons = Icons{
		TokenValid:   "[ok]",
		TokenAdvise:  "[!]",
		TokenUrgent:  "[!!]",
		TokenExpired: "[x]",
		Play:         ">",
		Stop:         "#",
		Loading:      "~",
		Failed:       "x",
		Download:     "v",
		Lyrics:       "[L]",
		Genius:       "[G]",
		Spotify:      "[S]",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Call this once at startup with the config
// value; unknown values select the unicode set.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

func TokenValid() string   { return current.TokenValid }
func TokenAdvise() string  { return current.TokenAdvise }
func TokenUrgent() string  { return current.TokenUrgent }
func TokenExpired() string { return current.TokenExpired }
func Play() string         { return current.Play }
func Stop() string         { return current.Stop }
func Loading() string      { return current.Loading }
func Failed() string       { return current.Failed }
func Download() string     { return current.Download }
func Lyrics() string       { return current.Lyrics }
func Genius() string       { return current.Genius }
func Spotify() string      { return current.Spotify }
