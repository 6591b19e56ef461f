// Package search holds the search session: the in-flight flag, the
// generation guard and the current result set.
package search

import (
	"errors"
	"strings"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/intent"
)

var (
	// ErrEmptyQuery is returned by Begin for a blank query.
	ErrEmptyQuery = errors.New("please enter a search term")
	// ErrBusy is returned by Begin while a search is in flight.
	ErrBusy = errors.New("search already in progress")
)

// User-facing texts.
const (
	MsgSearching       = "Searching..."
	MsgSearchingLyrics = "Searching lyrics on Genius (this can take a few seconds)..."
	MsgSearchSpotify   = "Searching Spotify..."
	MsgResolveSpotify  = "Resolving Spotify link..."
	MsgSearchFailed    = "Search failed"
	MsgConnectionError = "Connection error. Check that the server is running."
)

// Request is a search to send, tagged with the generation it belongs to.
type Request struct {
	Query  string
	Source string
	Mode   string
	Gen    uint64
}

// API returns the request body for the backend.
func (r Request) API() api.SearchRequest {
	return api.SearchRequest{Query: r.Query, Source: r.Source, Mode: r.Mode}
}

// Session is the search state of the active tab.
type Session struct {
	tab       Tab
	threshold int

	query     string
	searching bool
	gen       uint64
	loading   string
	lyrics    bool
	results   []api.Result
	err       string
	fallback  bool
}

// New creates a session on tab. threshold is the lyrics word threshold.
func New(tab Tab, threshold int) *Session {
	return &Session{tab: tab, threshold: threshold}
}

func (s *Session) Tab() Tab              { return s.tab }
func (s *Session) Query() string         { return s.query }
func (s *Session) Searching() bool       { return s.searching }
func (s *Session) Loading() string       { return s.loading }
func (s *Session) LyricsMode() bool      { return s.lyrics }
func (s *Session) Results() []api.Result { return s.results }
func (s *Session) Err() string           { return s.err }
func (s *Session) Gen() uint64           { return s.gen }
func (s *Session) SpotifyFallback() bool { return s.fallback }

// Begin starts a search for query on the session's tab. It clears the
// previous results and returns the request to send. While a search is in
// flight it returns ErrBusy and changes nothing.
func (s *Session) Begin(query string) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, ErrEmptyQuery
	}
	if s.searching {
		return Request{}, ErrBusy
	}

	s.gen++
	s.searching = true
	s.query = query
	s.results = nil
	s.err = ""
	s.fallback = false

	req := Request{Query: query, Source: string(s.tab), Gen: s.gen}
	s.lyrics = false
	if s.tab == TabQobuz && intent.ClassifyWith(query, s.threshold).IsLyrics {
		s.lyrics = true
		req.Mode = api.ModeLyrics
	}
	s.loading = loadingMessage(s.tab, query, s.lyrics)

	return req, nil
}

func loadingMessage(tab Tab, query string, lyrics bool) string {
	switch {
	case lyrics:
		return MsgSearchingLyrics
	case tab == TabSpotify && IsSpotifyLink(query):
		return MsgResolveSpotify
	case tab == TabSpotify:
		return MsgSearchSpotify
	default:
		return MsgSearching
	}
}

// IsSpotifyLink reports whether query is a Spotify URL or URI.
func IsSpotifyLink(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Contains(q, "open.spotify.com/") || strings.HasPrefix(q, "spotify:")
}

// Complete applies the outcome of the search issued under gen. A stale
// generation is ignored and false is returned. Otherwise the in-flight
// flag and loading message are always cleared.
func (s *Session) Complete(gen uint64, resp *api.SearchResponse, err error) bool {
	if gen != s.gen {
		return false
	}
	s.searching = false
	s.loading = ""

	switch {
	case err != nil:
		s.results = nil
		s.err = MsgConnectionError
	case resp == nil || !resp.Success:
		s.results = nil
		s.err = MsgSearchFailed
		if resp != nil && resp.Error != "" {
			s.err = resp.Error
		}
	default:
		s.results = Partition(resp.Results)
		s.err = ""
		s.fallback = resp.SpotifyFallback
	}
	return true
}

// SwitchTab resets the session onto tab. An in-flight response for the
// old tab will be discarded. It returns false when tab is already active.
func (s *Session) SwitchTab(tab Tab) bool {
	if tab == s.tab {
		return false
	}
	s.tab = tab
	s.reset()
	return true
}

// Clear resets the session without changing tab.
func (s *Session) Clear() {
	s.reset()
}

func (s *Session) reset() {
	s.gen++
	s.query = ""
	s.searching = false
	s.loading = ""
	s.lyrics = false
	s.results = nil
	s.err = ""
	s.fallback = false
}

// Partition returns results with lyric matches first, keeping the
// relative order inside each group.
func Partition(results []api.Result) []api.Result {
	out := make([]api.Result, 0, len(results))
	for _, r := range results {
		if r.FoundByLyrics {
			out = append(out, r)
		}
	}
	for _, r := range results {
		if !r.FoundByLyrics {
			out = append(out, r)
		}
	}
	return out
}
