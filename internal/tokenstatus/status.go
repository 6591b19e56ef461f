// Package tokenstatus derives the header indicator and detail reports
// from the backend's token and renewal payloads.
package tokenstatus

import (
	"fmt"
	"strings"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/icons"
)

// Day thresholds for the subscription warnings.
const (
	UrgentDays   = 7
	AdvisoryDays = 30
)

// Level is the severity of a token status.
type Level int

const (
	LevelUnknown Level = iota
	LevelValid
	LevelWarning
	LevelExpired
)

func (l Level) String() string {
	switch l {
	case LevelValid:
		return "valid"
	case LevelWarning:
		return "warning"
	case LevelExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Status is the indicator view model.
type Status struct {
	Level   Level
	Urgent  bool
	Text    string
	Tooltip string
}

// Checking is shown until the first poll completes.
var Checking = Status{Level: LevelUnknown, Text: "Checking token..."}

// Icon returns the glyph for s in the active icon set.
func (s Status) Icon() string {
	switch s.Level {
	case LevelValid:
		return icons.TokenValid()
	case LevelExpired:
		return icons.TokenExpired()
	case LevelWarning:
		if s.Urgent {
			return icons.TokenUrgent()
		}
		return icons.TokenAdvise()
	default:
		return icons.Loading()
	}
}

// Derive computes the indicator from a token-info call.
func Derive(resp *api.TokenInfoResponse, err error) Status {
	if err != nil || resp == nil || !resp.Success || resp.TokenInfo == nil {
		return Status{
			Level:   LevelWarning,
			Text:    "Could not verify token",
			Tooltip: "Token status could not be verified",
		}
	}

	info := resp.TokenInfo
	if !info.Valid {
		return Status{
			Level:   LevelExpired,
			Text:    "Token invalid or expired",
			Tooltip: firstNonEmpty(info.APIError, info.Error, "Could not validate token"),
		}
	}

	st := deriveValid(info)
	st.Tooltip = tooltip(info)
	return st
}

func deriveValid(info *api.TokenInfo) Status {
	sub := info.Subscription
	if sub == nil || sub.DaysRemaining == nil {
		text := "Token valid"
		if info.User != nil && known(info.User.Email) {
			text += " - " + info.User.Email
		}
		return Status{Level: LevelValid, Text: text}
	}

	days := *sub.DaysRemaining
	switch {
	case sub.Expired || days < 0:
		return Status{
			Level: LevelExpired,
			Text:  fmt.Sprintf("Subscription expired (%d days ago)", abs(days)),
		}
	case days <= UrgentDays:
		return Status{
			Level:  LevelWarning,
			Urgent: true,
			Text:   fmt.Sprintf("Subscription expires in %d days", days),
		}
	case days <= AdvisoryDays:
		return Status{
			Level: LevelWarning,
			Text:  fmt.Sprintf("Subscription expires in %d days", days),
		}
	default:
		return Status{
			Level: LevelValid,
			Text:  fmt.Sprintf("Subscription active (%d days left)", days),
		}
	}
}

func tooltip(info *api.TokenInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s", info.Type)
	if u := info.User; u != nil {
		fmt.Fprintf(&b, "\nUser: %s", u.Email)
		if known(u.Name) {
			fmt.Fprintf(&b, "\nName: %s", strings.TrimSpace(u.Name+" "+u.Surname))
		}
		fmt.Fprintf(&b, "\nCountry: %s", u.Country)
	}
	if s := info.Subscription; s != nil {
		fmt.Fprintf(&b, "\nSubscription: %s", s.Type)
		if s.ExpiryReadable != "" {
			fmt.Fprintf(&b, "\nExpires: %s", s.ExpiryReadable)
		}
		fmt.Fprintf(&b, "\nAuto-renew: %s", yesNo(s.AutoRenew))
	}
	if q := info.Quality; q != nil {
		fmt.Fprintf(&b, "\nMax quality: %s", q.MaxQuality)
		fmt.Fprintf(&b, "\nHi-Res: %s", yesNo(q.HiRes))
	}
	return b.String()
}

func known(v string) bool {
	return v != "" && v != api.Unavailable
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
