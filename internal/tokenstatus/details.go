package tokenstatus

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tunefetch/internal/api"
)

// expiryLayouts are the date formats the backend uses for "fin".
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// Details renders the multi-line token report shown on demand.
func Details(resp *api.TokenInfoResponse, err error, now time.Time) string {
	if err != nil {
		return "Could not verify token\n\n" + err.Error()
	}
	if resp == nil || !resp.Success || resp.TokenInfo == nil {
		msg := "Could not verify token"
		if resp != nil && resp.Error != "" {
			msg += "\n\n" + resp.Error
		}
		return msg
	}

	info := resp.TokenInfo
	var b strings.Builder
	if !info.Valid {
		b.WriteString("Token invalid or expired\n")
		if info.APIError != "" {
			fmt.Fprintf(&b, "API error: %s\n", info.APIError)
		}
		if info.Error != "" {
			fmt.Fprintf(&b, "Error: %s\n", info.Error)
		}
		if info.Note != "" {
			fmt.Fprintf(&b, "Note: %s\n", info.Note)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("Token valid\n")
	fmt.Fprintf(&b, "Type: %s\n", info.Type)

	if u := info.User; u != nil {
		b.WriteString("\nUSER\n")
		fmt.Fprintf(&b, "  Email:   %s\n", u.Email)
		if known(u.Name) {
			fmt.Fprintf(&b, "  Name:    %s\n", strings.TrimSpace(u.Name+" "+u.Surname))
		}
		fmt.Fprintf(&b, "  Country: %s\n", u.Country)
		fmt.Fprintf(&b, "  ID:      %s\n", u.ID)
	}

	if s := info.Subscription; s != nil {
		b.WriteString("\nSUBSCRIPTION\n")
		fmt.Fprintf(&b, "  Type:    %s\n", s.Type)
		fmt.Fprintf(&b, "  State:   %s\n", s.State)
		if s.ExpiryReadable != "" {
			expires := s.ExpiryReadable
			if t, ok := parseExpiry(string(s.End)); ok {
				expires += " (" + humanize.RelTime(t, now, "ago", "from now") + ")"
			}
			fmt.Fprintf(&b, "  Expires: %s\n", expires)
			if s.DaysRemaining != nil {
				b.WriteString("  " + daysLine(*s.DaysRemaining) + "\n")
			}
		} else {
			b.WriteString("  Expires: " + api.Unavailable + "\n")
		}
		fmt.Fprintf(&b, "  Auto-renew: %s\n", yesNo(s.AutoRenew))
	}

	if q := info.Quality; q != nil {
		b.WriteString("\nQUALITY\n")
		fmt.Fprintf(&b, "  MP3:    %s\n", q.Level)
		fmt.Fprintf(&b, "  FLAC:   %s\n", q.MaxQuality)
		fmt.Fprintf(&b, "  Hi-Res: %s\n", yesNo(q.HiRes))
	}

	return strings.TrimRight(b.String(), "\n")
}

func daysLine(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("EXPIRED (%d days ago)", abs(days))
	case days <= UrgentDays:
		return fmt.Sprintf("EXPIRES IN %d DAYS", days)
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

func parseExpiry(s string) (time.Time, bool) {
	if !known(s) {
		return time.Time{}, false
	}
	// Unix seconds, possibly fractional
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Unix(int64(secs), 0), true
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
