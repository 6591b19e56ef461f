package tokenstatus

import (
	"fmt"
	"strings"

	"github.com/llehouerou/tunefetch/internal/api"
)

// Renewal is the view model for the auto-renewal endpoints.
type Renewal struct {
	Known         bool
	NeedsRenewal  bool
	DaysRemaining int
	Vercel        bool
	Text          string
}

// DeriveRenewal computes the renewal indicator from a status or check call.
func DeriveRenewal(resp *api.RenewalResponse, err error) Renewal {
	if err != nil || resp == nil || !resp.Success {
		text := "Renewal status unavailable"
		if resp != nil && resp.Message != "" {
			text = resp.Message
		}
		return Renewal{Text: text}
	}

	r := Renewal{
		Known:        true,
		NeedsRenewal: resp.NeedsRenewal,
		Vercel:       resp.IsVercel,
	}
	if resp.DaysRemaining != nil {
		r.DaysRemaining = *resp.DaysRemaining
	}

	switch {
	case r.NeedsRenewal:
		r.Text = fmt.Sprintf("Renewal due (%d days left)", r.DaysRemaining)
	case resp.Message != "":
		r.Text = resp.Message
	default:
		r.Text = "No renewal needed"
	}
	return r
}

// ForceOutcome is what a forced renewal produced.
type ForceOutcome struct {
	OK bool
	// Message is the backend's summary or error.
	Message string
	// Credentials is set for direct deployments.
	Credentials *api.NewCredentials
	// Instructions and BackupData are set for hosted deployments, where
	// the user applies the new credentials by hand.
	Instructions string
	BackupData   string
	Timestamp    string
}

// HasInstructions reports whether the instructions panel should open.
func (o ForceOutcome) HasInstructions() bool {
	return o.Instructions != ""
}

// DeriveForce interprets a forced renewal response.
func DeriveForce(resp *api.RenewalResponse, err error) ForceOutcome {
	if err != nil {
		return ForceOutcome{Message: err.Error()}
	}
	if resp == nil || !resp.Success {
		msg := "Renewal failed"
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return ForceOutcome{Message: msg}
	}
	return ForceOutcome{
		OK:           true,
		Message:      firstNonEmpty(resp.Message, "Credentials renewed"),
		Credentials:  resp.NewCredentials,
		Instructions: resp.VercelInstructions,
		BackupData:   resp.LocalStorageData,
		Timestamp:    resp.Timestamp,
	}
}

// CredentialsReport renders direct-deployment credentials for a one-off popup.
func CredentialsReport(c *api.NewCredentials) string {
	if c == nil {
		return "Credentials renewed"
	}
	var b strings.Builder
	b.WriteString("New credentials are active\n\n")
	fmt.Fprintf(&b, "App ID:  %s\n", orUnavailable(c.AppID))
	fmt.Fprintf(&b, "User ID: %s\n", orUnavailable(c.UserID))
	fmt.Fprintf(&b, "Token:   %s", orUnavailable(c.TokenPreview))
	return b.String()
}

func orUnavailable(s string) string {
	if s == "" {
		return api.Unavailable
	}
	return s
}
