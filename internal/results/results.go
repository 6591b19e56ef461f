// Package results turns search results into a display model.
package results

import (
	"fmt"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/ui/render"
)

// Reasons shown for inert items.
const (
	ReasonLyricsOnly = "Lyrics match only: no playable track"
	ReasonNoID       = "No track id: cannot download or preview"
)

// Badge marks how a result was found.
type Badge int

const (
	BadgeLyrics Badge = iota
	BadgeGenius
	BadgeSpotify
)

// String returns the badge label.
func (b Badge) String() string {
	switch b {
	case BadgeLyrics:
		return "lyrics"
	case BadgeGenius:
		return "genius"
	case BadgeSpotify:
		return "spotify"
	default:
		return ""
	}
}

// Item is one rendered result.
type Item struct {
	Index    int
	TrackID  string
	Title    string
	Artist   string
	Album    string // empty when absent
	Duration string // M:SS, empty when absent
	Cover    string // URL, empty when absent
	Badges   []Badge
	Fragment string

	Downloadable bool
	Previewable  bool
	InertReason  string
}

// Inert reports whether the item has no actions.
func (it Item) Inert() bool {
	return !it.Downloadable && !it.Previewable
}

// Summary counts the result set.
type Summary struct {
	Total  int
	Lyrics int
	Genius int
	Text   string
}

// View is the display model of a result set.
type View struct {
	Items   []Item
	Summary Summary
}

// Render maps results to items. It is pure and keeps the input order.
func Render(results []api.Result) View {
	items := make([]Item, len(results))
	var sum Summary
	for i, r := range results {
		items[i] = renderItem(i, r)
		if r.FoundByLyrics {
			sum.Lyrics++
		}
		if r.GeniusMatch {
			sum.Genius++
		}
	}
	sum.Total = len(results)
	sum.Text = summaryText(sum)
	return View{Items: items, Summary: sum}
}

func renderItem(i int, r api.Result) Item {
	it := Item{
		Index:   i,
		TrackID: string(r.ID),
		Title:   render.Sanitize(r.Title),
		Artist:  render.Sanitize(r.Artist),
		Album:   render.Sanitize(r.Album),
		Cover:   render.Sanitize(r.Cover),
	}
	if r.Duration > 0 {
		it.Duration = FormatDuration(r.Duration)
	}

	if r.FoundByLyrics {
		it.Badges = append(it.Badges, BadgeLyrics)
	}
	if r.GeniusMatch {
		it.Badges = append(it.Badges, BadgeGenius)
	}
	if r.FromSpotify {
		it.Badges = append(it.Badges, BadgeSpotify)
	}
	it.Fragment = render.Sanitize(r.MatchedFragment)
	if it.Fragment == "" {
		it.Fragment = render.Sanitize(r.LyricsFragment)
	}

	switch {
	case r.Source == api.SourceGenius:
		it.InertReason = ReasonLyricsOnly
	case r.ID == "":
		it.InertReason = ReasonNoID
	default:
		it.Downloadable = true
		it.Previewable = true
	}
	return it
}

func summaryText(s Summary) string {
	if s.Total == 0 {
		return "No results found"
	}
	text := fmt.Sprintf("%d result(s)", s.Total)
	switch {
	case s.Genius > 0:
		text += fmt.Sprintf(" (%d confirmed by Genius)", s.Genius)
	case s.Lyrics > 0:
		text += fmt.Sprintf(" (%d by lyrics)", s.Lyrics)
	}
	return text
}

// FormatDuration formats seconds as M:SS.
func FormatDuration(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
