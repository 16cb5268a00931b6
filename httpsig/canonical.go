package httpsig

import (
	"net/http"
	"net/url"
	"strings"
)

// CanonicalRequest holds the request elements covered by the Digipost
// signature, in signing order.
type CanonicalRequest struct {
	Method        string
	Path          string
	Date          string
	ContentSHA256 string
	UserID        string
	Query         string
}

// NewCanonicalRequest extracts the signed elements from a request.
//
// The method is uppercased, the escaped URL path is lowercased ("/" when
// empty) and the raw, already URL-encoded query string is lowercased.
// Missing headers yield empty values; NewCanonicalRequest never fails and
// does not validate header presence.
func NewCanonicalRequest(method string, u *url.URL, h http.Header) CanonicalRequest {
	cr := CanonicalRequest{
		Method:        strings.ToUpper(method),
		Path:          "/",
		Date:          headerValue(h, HeaderDate),
		ContentSHA256: headerValue(h, HeaderContentSHA256),
		UserID:        headerValue(h, HeaderUserID),
	}

	if u != nil {
		if p := u.EscapedPath(); p != "" {
			cr.Path = strings.ToLower(p)
		}

		cr.Query = strings.ToLower(u.RawQuery)
	}

	return cr
}

// String serializes the canonical request. Lines, each terminated by a
// single "\n" including the last one:
//
//	<METHOD>
//	<path>
//	date: <Date>
//	x-content-sha256: <X-Content-SHA256>   (only when non-empty)
//	x-digipost-userid: <X-Digipost-UserId>
//	<query>
func (cr CanonicalRequest) String() string {
	var b strings.Builder

	b.WriteString(cr.Method)
	b.WriteByte('\n')
	b.WriteString(cr.Path)
	b.WriteByte('\n')
	b.WriteString("date: ")
	b.WriteString(cr.Date)
	b.WriteByte('\n')

	if cr.ContentSHA256 != "" {
		b.WriteString("x-content-sha256: ")
		b.WriteString(cr.ContentSHA256)
		b.WriteByte('\n')
	}

	b.WriteString("x-digipost-userid: ")
	b.WriteString(cr.UserID)
	b.WriteByte('\n')
	b.WriteString(cr.Query)
	b.WriteByte('\n')

	return b.String()
}

// Bytes returns the exact byte sequence that is signed.
func (cr CanonicalRequest) Bytes() []byte {
	return []byte(cr.String())
}

// BuildCanonicalRequest is shorthand for
// NewCanonicalRequest(method, u, h).Bytes().
func BuildCanonicalRequest(method string, u *url.URL, h http.Header) []byte {
	return NewCanonicalRequest(method, u, h).Bytes()
}

// headerValue returns the first value of the named header. Keys that were
// inserted into the map without canonicalization are matched
// case-insensitively.
func headerValue(h http.Header, name string) string {
	if v := h.Get(name); v != "" {
		return v
	}

	for k, values := range h {
		if len(values) > 0 && strings.EqualFold(k, name) {
			return values[0]
		}
	}

	return ""
}
