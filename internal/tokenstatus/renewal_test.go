package tokenstatus

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/mockapi"
)

func TestDeriveRenewal(t *testing.T) {
	tests := []struct {
		name      string
		resp      *api.RenewalResponse
		err       error
		wantKnown bool
		wantDue   bool
		wantText  string
	}{
		{"transport error", nil, errors.New("refused"), false, false, "Renewal status unavailable"},
		{"backend failure message", &api.RenewalResponse{Message: "Error checking"}, nil, false, false, "Error checking"},
		{"due", &api.RenewalResponse{Success: true, NeedsRenewal: true, DaysRemaining: intp(3)}, nil, true, true, "Renewal due (3 days left)"},
		{"not due with message", &api.RenewalResponse{Success: true, Message: "Token valid for 40 more days", DaysRemaining: intp(40)}, nil, true, false, "Token valid for 40 more days"},
		{"not due without message", &api.RenewalResponse{Success: true}, nil, true, false, "No renewal needed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DeriveRenewal(tt.resp, tt.err)
			assert.Equal(t, tt.wantKnown, r.Known)
			assert.Equal(t, tt.wantDue, r.NeedsRenewal)
			assert.Equal(t, tt.wantText, r.Text)
		})
	}
}

func TestDeriveForce_AgainstMockBackend(t *testing.T) {
	t.Run("direct deployment returns credentials", func(t *testing.T) {
		srv := httptest.NewServer(mockapi.New().Handler())
		defer srv.Close()

		resp, err := api.NewClient(srv.URL, 0).RenewalForce(t.Context())
		out := DeriveForce(resp, err)
		require.True(t, out.OK)
		assert.False(t, out.HasInstructions())
		require.NotNil(t, out.Credentials)
		assert.Contains(t, CredentialsReport(out.Credentials), "App ID:  798273057")
	})

	t.Run("hosted deployment returns instructions", func(t *testing.T) {
		srv := httptest.NewServer(mockapi.New(mockapi.WithVercel()).Handler())
		defer srv.Close()

		resp, err := api.NewClient(srv.URL, 0).RenewalForce(t.Context())
		out := DeriveForce(resp, err)
		require.True(t, out.OK)
		assert.True(t, out.HasInstructions())
		assert.Nil(t, out.Credentials)
		assert.Contains(t, out.BackupData, `"app_id"`)
	})
}

func TestDeriveForce_Failures(t *testing.T) {
	assert.Equal(t, ForceOutcome{Message: "refused"}, DeriveForce(nil, errors.New("refused")))
	assert.Equal(t, "Renewal failed", DeriveForce(&api.RenewalResponse{}, nil).Message)
	assert.Equal(t, "quota", DeriveForce(&api.RenewalResponse{Message: "quota"}, nil).Message)
}

func TestCredentialsReport(t *testing.T) {
	out := CredentialsReport(&api.NewCredentials{AppID: "1", TokenPreview: "abc..."})
	assert.Equal(t, "New credentials are active\n\nApp ID:  1\nUser ID: No disponible\nToken:   abc...", out)
	assert.Equal(t, "Credentials renewed", CredentialsReport(nil))
}
