package es

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"    // Wrap errors with stacktrace.
	"github.com/stretchr/testify/assert" // Test assertions.
)

func TestParseMajorVersion(t *testing.T) {
	tests := []struct {
		version string
		want    int
		wantErr bool
	}{
		{version: "7.10.2", want: 7},
		{version: "8.11.0", want: 8},
		{version: "6.8.23", want: 6},
		{version: "5.0.0-alpha1", want: 5},
		{version: "1.7.5", want: 1},
		{version: "10", want: 10},
		{version: "", wantErr: true},
		{version: "banana", wantErr: true},
		{version: ".7", wantErr: true},
		{version: "-1.0", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.version, func(t *testing.T) {
			got, err := ParseMajorVersion(tc.version)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDailyIndices(t *testing.T) {
	from := time.Date(2020, time.January, 30, 22, 0, 0, 0, time.UTC)
	to := time.Date(2020, time.February, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t,
		"gravitee-2020.01.30,gravitee-2020.01.31,gravitee-2020.02.01,gravitee-2020.02.02",
		DailyIndices("gravitee", from, to),
	)
	assert.Equal(t, "gravitee-2020.01.30", DailyIndices("gravitee", from, from))
	assert.Equal(t, "", DailyIndices("gravitee", to, from))
}

func TestDailyIndex_utc(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2020, time.March, 1, 1, 0, 0, 0, loc)
	assert.Equal(t, "gravitee-2020.02.29", DailyIndex("gravitee", ts))
}

func TestSearchPath(t *testing.T) {
	assert.Equal(t, "/_all/_search", searchPath("", ""))
	assert.Equal(t, "/a,b/_search", searchPath("a,b", ""))
	assert.Equal(t, "/a/health/_search", searchPath("a", "health"))
}

func TestEndpoint(t *testing.T) {
	for in, want := range map[string]string{
		"http://es":            "http://es:80",
		"https://es":           "https://es:443",
		"http://es:9200":       "http://es:9200",
		"https://es:9243/path": "https://es:9243",
	} {
		c := Config{URL: in, Timeout: time.Second, IndexName: "gravitee"}
		u, err := c.validate()
		if assert.NoError(t, err, in) {
			assert.Equal(t, want, endpoint(u), in)
		}
	}
}

func TestTechnicalError(t *testing.T) {
	cause := errors.New("connection refused")
	err := pkgerrors.Wrap(&TechnicalError{Op: opSearch, Err: cause}, "outer")
	assert.True(t, IsTechnical(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, pkgerrors.Cause(err))
	assert.Equal(t, "elasticsearch search failed: connection refused", (&TechnicalError{Op: opSearch, Err: cause}).Error())
	assert.Equal(t, "elasticsearch search failed with status 500: unexpected response status 500", unexpectedStatus(opSearch, 500).Error())
	assert.False(t, IsTechnical(cause))
}

func TestHeaderTransport(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	client := &http.Client{Transport: &headerTransport{
		next:          http.DefaultTransport,
		authorization: basicAuthorization("elastic", "changeme"),
	}}
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	assert.NoError(t, err)
	req.Header.Add("Accept", "application/json")
	resp, err := client.Do(req)
	if assert.NoError(t, err) {
		resp.Body.Close()
	}

	assert.Equal(t, []string{"application/json;charset=UTF-8"}, got.Values("Accept"))
	assert.Equal(t, "UTF-8", got.Get("Accept-Charset"))
	assert.Equal(t, "Basic ZWxhc3RpYzpjaGFuZ2VtZQ==", got.Get("Authorization"))
	// The caller's request is untouched.
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestInsecureTransport(t *testing.T) {
	base := &http.Transport{}
	rt := insecureTransport(base)
	tr, ok := rt.(*http.Transport)
	if assert.True(t, ok) {
		assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
	}
	// Clone may set up HTTP/2 on base, which gives it a TLS config, but never an insecure one.
	assert.True(t, base.TLSClientConfig == nil || !base.TLSClientConfig.InsecureSkipVerify,
		"base transport must not be made insecure")
	assert.NotSame(t, base, tr)

	other := http.RoundTripper(&headerTransport{})
	assert.Same(t, other, insecureTransport(other))
}
