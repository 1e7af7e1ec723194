package es

import (
	"encoding/base64"
	"net/http"
)

// Header values sent on every request.
const (
	contentTypeJSON   = "application/json;charset=UTF-8"
	contentTypeNDJSON = "application/x-ndjson"
	acceptCharset     = "UTF-8"
)

// headerTransport sets the common headers on every request
// before handing it to the next RoundTripper.
type headerTransport struct {
	next          http.RoundTripper
	authorization string
}

// RoundTrip implements http.RoundTripper.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the original request.
	req = req.Clone(req.Context())
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Accept-Charset", acceptCharset)
	if t.authorization != "" {
		req.Header.Set("Authorization", t.authorization)
	}
	return t.next.RoundTrip(req)
}

// basicAuthorization returns the value of a Basic Authorization header.
func basicAuthorization(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
