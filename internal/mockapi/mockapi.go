// Package mockapi serves the backend contract with canned data for local
// development and client tests.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Track is a catalog entry.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"`
	Cover    string `json:"cover,omitempty"`
}

// DefaultCatalog is the track list served when none is given.
var DefaultCatalog = []Track{
	{ID: "101", Title: "Tonight The Rain", Artist: "Low Tide", Album: "Harbour", Duration: 241},
	{ID: "102", Title: "Slow Falls", Artist: "Low Tide", Album: "Harbour", Duration: 198},
	{ID: "103", Title: "Paper Lanterns", Artist: "Mira Vale", Duration: 305},
	{ID: "104", Title: "Down The Line", Artist: "The Stills", Album: "Signals", Duration: 187},
}

// Server holds the mock backend state.
type Server struct {
	mu sync.Mutex

	catalog       []Track
	daysRemaining int
	tokenValid    bool
	vercel        bool
	searches      int
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog replaces the served catalog.
func WithCatalog(tracks []Track) Option {
	return func(s *Server) { s.catalog = tracks }
}

// WithDaysRemaining sets the subscription days reported by token-info.
func WithDaysRemaining(days int) Option {
	return func(s *Server) { s.daysRemaining = days }
}

// WithInvalidToken makes token-info report an invalid token.
func WithInvalidToken() Option {
	return func(s *Server) { s.tokenValid = false }
}

// WithVercel makes forced renewals return manual instructions.
func WithVercel() Option {
	return func(s *Server) { s.vercel = true }
}

// New creates a mock backend.
func New(opts ...Option) *Server {
	s := &Server{
		catalog:       DefaultCatalog,
		daysRemaining: 45,
		tokenValid:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Searches returns how many search requests were served.
func (s *Server) Searches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches
}

// Handler returns the router for all backend endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.search)
		r.Post("/download", s.download)
		r.Post("/preview", s.preview)
		r.Get("/proxy-download", s.proxyDownload)
		r.Get("/token-info", s.tokenInfo)
		r.Get("/auto-renewal/status", s.renewalStatus)
		r.Get("/auto-renewal/check", s.renewalCheck)
		r.Post("/auto-renewal/force", s.renewalForce)
	})
	r.Get("/files/{id}", s.file)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func failure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func baseURL(r *http.Request) string {
	return "http://" + r.Host
}

func (s *Server) find(id string) (Track, bool) {
	for _, t := range s.catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query  string `json:"query"`
		Source string `json:"source"`
		Mode   string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		failure(w, http.StatusBadRequest, "Query vacío")
		return
	}

	s.mu.Lock()
	s.searches++
	s.mu.Unlock()

	words := strings.Fields(strings.ToLower(query))
	results := []map[string]any{}
	for _, t := range s.catalog {
		hay := strings.ToLower(t.Title + " " + t.Artist + " " + t.Album)
		if !containsAny(hay, words) {
			continue
		}
		item := trackJSON(t)
		if req.Mode == "lyrics" {
			item["found_by_lyrics"] = true
			item["genius_match"] = true
			item["matched_fragment"] = query
		}
		if req.Source == "spotify" {
			item["mapped_from_spotify"] = true
		}
		results = append(results, item)
	}
	if req.Mode == "lyrics" {
		results = append(results, map[string]any{
			"title":           query,
			"artist":          "Unknown",
			"source":          "genius",
			"found_by_lyrics": true,
			"lyrics_fragment": query,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
		"total":   len(results),
	})
}

func containsAny(hay string, words []string) bool {
	for _, w := range words {
		if strings.Contains(hay, w) {
			return true
		}
	}
	return false
}

func trackJSON(t Track) map[string]any {
	item := map[string]any{
		"id":     t.ID,
		"title":  t.Title,
		"artist": t.Artist,
		"source": "qobuz",
	}
	if t.Album != "" {
		item["album"] = t.Album
	}
	if t.Duration > 0 {
		item["duration"] = t.Duration
	}
	if t.Cover != "" {
		item["cover"] = t.Cover
	}
	return item
}

type trackRequest struct {
	TrackID json.RawMessage `json:"track_id"`
	Quality string          `json:"quality"`
}

// id accepts the track id as a JSON string or number.
func (r trackRequest) id() string {
	id := strings.Trim(string(r.TrackID), `" `)
	if id == "null" {
		return ""
	}
	return id
}

func (s *Server) decodeTrack(w http.ResponseWriter, r *http.Request) (Track, trackRequest, bool) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.id() == "" {
		failure(w, http.StatusBadRequest, "Track ID requerido")
		return Track{}, req, false
	}
	t, ok := s.find(req.id())
	if !ok {
		failure(w, http.StatusNotFound, "Track no encontrado")
		return Track{}, req, false
	}
	return t, req, true
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	t, req, ok := s.decodeTrack(w, r)
	if !ok {
		return
	}
	ext := ".flac"
	if req.Quality == "5" {
		ext = ".mp3"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"download_url": fmt.Sprintf("%s/files/%s%s", baseURL(r), t.ID, ext),
		"quality":      req.Quality,
		"track_info":   map[string]string{"title": t.Title, "artist": t.Artist, "album": t.Album},
	})
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	t, _, ok := s.decodeTrack(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preview_url": fmt.Sprintf("%s/files/%s.mp3?preview=1", baseURL(r), t.ID),
		"track_info":  map[string]string{"title": t.Title, "artist": t.Artist, "album": t.Album, "cover": t.Cover},
	})
}

// Payload returns the canned file body served for a track id.
func Payload(id string) []byte {
	return []byte(strings.Repeat("tunefetch mock audio "+id+"\n", 64))
}

func (s *Server) file(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "id")
	id := strings.TrimSuffix(strings.TrimSuffix(name, ".mp3"), ".flac")
	if _, ok := s.find(id); !ok {
		http.NotFound(w, r)
		return
	}
	contentType := "audio/flac"
	if strings.HasSuffix(name, ".mp3") {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(Payload(id))
}

func (s *Server) proxyDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("track_id")
	if q.Get("url") == "" || id == "" {
		failure(w, http.StatusBadRequest, "Parámetros requeridos")
		return
	}
	if _, ok := s.find(id); !ok {
		failure(w, http.StatusNotFound, "Track no encontrado")
		return
	}
	data := Payload(id)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", q.Get("filename")))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	_, _ = w.Write(data)
}

func (s *Server) tokenInfo(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	valid, days := s.tokenValid, s.daysRemaining
	s.mu.Unlock()

	if !valid {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token_info": map[string]any{
				"token_valido": false,
				"error_api":    "401 Unauthorized",
				"nota":         "Token rejected by provider",
			},
		})
		return
	}

	end := time.Now().AddDate(0, 0, days)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token_info": map[string]any{
			"token_valido": true,
			"tipo":         "user_auth_token",
			"usuario": map[string]any{
				"id":     12345,
				"email":  "listener@example.com",
				"nombre": "Demo",
				"pais":   "FR",
			},
			"suscripcion": map[string]any{
				"tipo":                     "Studio",
				"estado":                   "active",
				"fin":                      end.Unix(),
				"renovacion_automatica":    true,
				"dias_restantes":           days,
				"expirado":                 days < 0,
				"fecha_expiracion_legible": end.Format(time.DateTime),
			},
			"calidad": map[string]any{
				"nivel":            true,
				"calidad_maxima":   true,
				"hires_disponible": true,
			},
		},
	})
}

func (s *Server) renewalPayload(message string) map[string]any {
	s.mu.Lock()
	days, vercel := s.daysRemaining, s.vercel
	s.mu.Unlock()
	if message == "" {
		message = fmt.Sprintf("Token valid for %d more days", days)
	}
	return map[string]any{
		"success":        true,
		"message":        message,
		"needs_renewal":  days <= 7,
		"days_remaining": days,
		"is_vercel":      vercel,
		"timestamp":      time.Now().Format(time.RFC3339),
	}
}

func (s *Server) renewalStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.renewalPayload(""))
}

func (s *Server) renewalCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.renewalPayload("No renewal needed"))
}

func (s *Server) renewalForce(w http.ResponseWriter, _ *http.Request) {
	payload := s.renewalPayload("Credentials renewed")
	if vercel, _ := payload["is_vercel"].(bool); vercel {
		payload["vercel_instructions"] = "Set QOBUZ_APP_ID=798273057 and QOBUZ_USER_AUTH_TOKEN in the project environment, then redeploy."
		payload["local_storage_data"] = `{"app_id":"798273057","user_id":"12345","token":"abc...xyz"}`
	} else {
		payload["new_credentials"] = map[string]string{
			"app_id":        "798273057",
			"user_id":       "12345",
			"token_preview": "abc...xyz",
		}
	}
	writeJSON(w, http.StatusOK, payload)
}
