package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubURLs struct{ base string }

func (s stubURLs) GoogleAuthURL(redirectURI string) string {
	return s.base + "/auth/google?redirect_uri=" + url.QueryEscape(redirectURI)
}

// fakeProvider plays the consent page: it redirects straight back with a token.
func fakeProvider(t *testing.T, token string) func(string) error {
	t.Helper()
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		if err != nil {
			return err
		}
		redirect, err := url.Parse(u.Query().Get("redirect_uri"))
		if err != nil {
			return err
		}
		q := redirect.Query()
		q.Set("token", token)
		redirect.RawQuery = q.Encode()
		go func() {
			resp, err := http.Get(redirect.String())
			if err == nil {
				resp.Body.Close() //nolint:errcheck
			}
		}()
		return nil
	}
}

func TestFlowAuthorize(t *testing.T) {
	f := &Flow{
		Auth:   stubURLs{base: "http://api.test"},
		Addr:   "127.0.0.1:0",
		Open:   fakeProvider(t, "a.b.c"),
		Logger: quiet(),
	}
	got, err := f.Authorize(context.Background())
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/auth/google/callback", u.Path)
	assert.Equal(t, "a.b.c", u.Query().Get("token"))
	assert.NotEmpty(t, u.Query().Get("state"))
}

func TestFlowPromptsWhenBrowserFails(t *testing.T) {
	var prompted string
	f := &Flow{
		Auth:    stubURLs{base: "http://api.test"},
		Open:    func(string) error { return errors.New("no browser") },
		Prompt:  func(u string) { prompted = u },
		Timeout: 20 * time.Millisecond,
		Logger:  quiet(),
	}
	_, err := f.Authorize(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, prompted, "http://api.test/auth/google?redirect_uri=")
}
