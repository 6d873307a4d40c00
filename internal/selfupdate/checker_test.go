package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/aleksandri0/mathpower/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		tag       string
		available bool
	}{
		{"newer patch", "v1.2.3", "v1.2.4", true},
		{"newer major", "1.9.0", "v2.0.0", true},
		{"same", "v1.2.3", "v1.2.3", false},
		{"older release", "v1.3.0", "v1.2.9", false},
		{"prerelease is older", "v1.0.0", "v1.0.0-rc.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := releaseServer(t, http.StatusOK, `{"tag_name":"`+tt.tag+`","html_url":"https://example.com/r"}`)

			res, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.UpdateAvailable)
			assert.Equal(t, tt.tag, res.LatestVersion)
			assert.Equal(t, "https://example.com/r", res.ReleaseURL)
		})
	}
}

func TestCheckErrors(t *testing.T) {
	t.Run("invalid current version", func(t *testing.T) {
		_, err := NewChecker().Check(context.Background(), &CheckInput{Version: DevVersion})
		assert.ErrorContains(t, err, "invalid current version")
	})

	t.Run("http error", func(t *testing.T) {
		srv := releaseServer(t, http.StatusForbidden, `{}`)
		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.ErrorContains(t, err, "HTTP 403")
	})

	t.Run("bad tag", func(t *testing.T) {
		srv := releaseServer(t, http.StatusOK, `{"tag_name":"nightly"}`)
		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.ErrorContains(t, err, "invalid release tag")
	})

	t.Run("other repository", func(t *testing.T) {
		srv := releaseServer(t, http.StatusOK, `{"tag_name":"v9.0.0"}`)
		_, err := NewChecker(WithBaseURL(srv.URL), WithRepository("someone", "else")).
			Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.ErrorContains(t, err, "HTTP 404")
	})
}

func TestWithTimeout(t *testing.T) {
	c := NewChecker(WithTimeout(3 * time.Second))
	assert.Equal(t, 3*time.Second, c.client.Timeout)
}
