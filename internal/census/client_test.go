package census

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientURL(t *testing.T) {
	c := NewClient(WithBaseURL("https://census.test/data/"), WithYear("2021"), WithAPIKey("secret"))

	tests := []struct {
		name  string
		query Query
		for_  string
		in    string
	}{
		{"state", Query{StateCode: "06"}, "state:06", ""},
		{"city", Query{StateCode: "06", City: "Fresno"}, "place:*", "state:06"},
		{"zip", Query{StateCode: "06", ZipCode: "93701", City: "Fresno"}, "zip code tabulation area:93701", "state:06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := c.URL(tt.query)
			require.NoError(t, err)

			u, err := url.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "/data/2021/acs/acs5", u.Path)

			params := u.Query()
			assert.Equal(t, strings.Join(Variables, ","), params.Get("get"))
			assert.Equal(t, tt.for_, params.Get("for"))
			assert.Equal(t, tt.in, params.Get("in"))
			assert.Equal(t, "secret", params.Get("key"))
		})
	}
}

func TestClientURLErrors(t *testing.T) {
	c := NewClient()

	_, err := c.URL(Query{ZipCode: "10001"})
	assert.ErrorIs(t, err, ErrStateRequired)

	_, err = c.URL(Query{City: "Boston"})
	assert.ErrorIs(t, err, ErrNoLocation)

	_, err = c.URL(Query{})
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestClientFetch(t *testing.T) {
	t.Run("returns rows", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "state:36", r.URL.Query().Get("for"))
			_, _ = w.Write([]byte(`[["NAME","B19013_001E","state"],["New York","68486","36"]]`))
		}))
		defer srv.Close()

		rows, err := NewClient(WithBaseURL(srv.URL)).Fetch(context.Background(), Query{StateCode: "36"})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"NAME", "B19013_001E", "state"}, {"New York", "68486", "36"}}, rows)
	})

	failures := []struct {
		name   string
		status int
		body   string
		want   int
	}{
		{"upstream status", http.StatusBadRequest, "error: unknown variable", http.StatusBadRequest},
		{"not json", http.StatusOK, "<html>maintenance</html>", 0},
		{"single row", http.StatusOK, `[["NAME"]]`, 0},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(WithBaseURL(srv.URL)).Fetch(context.Background(), Query{StateCode: "36"})

			var upstream *UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.want, upstream.Status)
		})
	}

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := NewClient(WithBaseURL(srv.URL)).Fetch(context.Background(), Query{StateCode: "36"})

		var upstream *UpstreamError
		assert.True(t, errors.As(err, &upstream))
	})
}
