package api

import (
	"bytes"
	"encoding/json"
)

// TrackID is an opaque track identifier. The backend sends it either as
// a JSON string or a JSON number; both decode to the same string form.
type TrackID string

// UnmarshalJSON accepts strings, numbers and null.
func (id *TrackID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TrackID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = TrackID(n.String())
	return nil
}

// Result is a single search hit.
type Result struct {
	ID              TrackID `json:"id"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Album           string  `json:"album,omitempty"`
	Duration        int     `json:"duration,omitempty"` // seconds
	Cover           string  `json:"cover,omitempty"`
	FoundByLyrics   bool    `json:"found_by_lyrics,omitempty"`
	Source          string  `json:"source,omitempty"`
	GeniusMatch     bool    `json:"genius_match,omitempty"`
	GeniusURL       string  `json:"genius_url,omitempty"`
	MatchedFragment string  `json:"matched_fragment,omitempty"`
	LyricsFragment  string  `json:"lyrics_fragment,omitempty"`
	FromSpotify     bool    `json:"mapped_from_spotify,omitempty"`
}

// SourceGenius marks lyric-database hits that carry no playable track.
const SourceGenius = "genius"

// Playable reports whether the result can be downloaded or previewed.
func (r Result) Playable() bool {
	return r.ID != "" && r.Source != SourceGenius
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query  string `json:"query"`
	Source string `json:"source"`
	Mode   string `json:"mode,omitempty"`
}

// ModeLyrics asks the backend to search lyrics first.
const ModeLyrics = "lyrics"

// SearchResponse is the body returned by POST /api/search.
type SearchResponse struct {
	HTTPStatus int `json:"-"`

	Success         bool            `json:"success"`
	Results         []Result        `json:"results,omitempty"`
	Total           int             `json:"total,omitempty"`
	Error           string          `json:"error,omitempty"`
	SpotifyFallback bool            `json:"spotify_fallback,omitempty"`
	Debug           json.RawMessage `json:"debug,omitempty"`
}

// DownloadRequest is the body of POST /api/download.
type DownloadRequest struct {
	TrackID TrackID `json:"track_id"`
	Quality string  `json:"quality"`
}

// TrackInfo is the track summary attached to download and preview responses.
type TrackInfo struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Cover  string `json:"cover,omitempty"`
}

// DownloadResponse is the body returned by POST /api/download.
type DownloadResponse struct {
	HTTPStatus int `json:"-"`

	Success     bool       `json:"success"`
	DownloadURL string     `json:"download_url,omitempty"`
	Quality     string     `json:"quality,omitempty"`
	TrackInfo   *TrackInfo `json:"track_info,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// PreviewRequest is the body of POST /api/preview.
type PreviewRequest struct {
	TrackID TrackID `json:"track_id"`
}

// PreviewResponse is the body returned by POST /api/preview.
type PreviewResponse struct {
	HTTPStatus int `json:"-"`

	Success    bool       `json:"success"`
	PreviewURL string     `json:"preview_url,omitempty"`
	TrackInfo  *TrackInfo `json:"track_info,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Unavailable is the placeholder the backend uses for unknown values.
const Unavailable = "No disponible"

// User is the account attached to the upstream token.
type User struct {
	ID       FlexString `json:"id"`
	Email    string     `json:"email"`
	Name     string     `json:"nombre"`
	Surname  string     `json:"apellido"`
	Country  string     `json:"pais"`
	Timezone string     `json:"zona_horaria"`
}

// Subscription describes the upstream subscription.
type Subscription struct {
	Type           string     `json:"tipo"`
	State          string     `json:"estado"`
	Start          FlexString `json:"inicio"`
	End            FlexString `json:"fin"`
	Period         string     `json:"periodo"`
	AutoRenew      bool       `json:"renovacion_automatica"`
	DaysRemaining  *int       `json:"dias_restantes"`
	Expired        bool       `json:"expirado"`
	ExpiryReadable string     `json:"fecha_expiracion_legible"`
	DetailedState  string     `json:"estado_detallado"`
}

// Quality describes the formats the subscription is entitled to.
type Quality struct {
	Level      FlexString `json:"nivel"`
	MaxQuality FlexString `json:"calidad_maxima"`
	HiRes      bool       `json:"hires_disponible"`
}

// TokenInfo is the upstream token and subscription record.
type TokenInfo struct {
	Valid        bool          `json:"token_valido"`
	Type         string        `json:"tipo"`
	User         *User         `json:"usuario"`
	Subscription *Subscription `json:"suscripcion"`
	Quality      *Quality      `json:"calidad"`
	APIError     string        `json:"error_api"`
	Error        string        `json:"error"`
	Note         string        `json:"nota"`
}

// TokenInfoResponse is the body returned by GET /api/token-info.
type TokenInfoResponse struct {
	HTTPStatus int `json:"-"`

	Success   bool       `json:"success"`
	TokenInfo *TokenInfo `json:"token_info,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// NewCredentials is the redacted credential summary returned by a renewal.
type NewCredentials struct {
	AppID        string `json:"app_id"`
	UserID       string `json:"user_id"`
	TokenPreview string `json:"token_preview"`
}

// RenewalResponse is the body returned by the auto-renewal endpoints.
type RenewalResponse struct {
	HTTPStatus int `json:"-"`

	Success            bool            `json:"success"`
	Message            string          `json:"message"`
	NeedsRenewal       bool            `json:"needs_renewal"`
	DaysRemaining      *int            `json:"days_remaining,omitempty"`
	IsVercel           bool            `json:"is_vercel"`
	NewCredentials     *NewCredentials `json:"new_credentials,omitempty"`
	VercelInstructions string          `json:"vercel_instructions,omitempty"`
	LocalStorageData   string          `json:"local_storage_data,omitempty"`
	Timestamp          string          `json:"timestamp,omitempty"`
}

// FlexString decodes a JSON string, number or boolean into a string.
// Booleans become "Yes" or "No".
type FlexString string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*s = "Yes"
		return nil
	case "false":
		*s = "No"
		return nil
	}
	var id TrackID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	*s = FlexString(id)
	return nil
}
