package httpsig

import "net/http"

// Transport is an http.RoundTripper that adds the Digipost signature
// headers to each outgoing request.
type Transport struct {
	next http.RoundTripper
	cfg  SignConfig
}

// NewTransport wraps base with request signing. A nil base is replaced by
// a private clone of http.DefaultTransport.
//
//	base := &http.Transport{
//	    TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
//	}
//	transport := httpsig.NewTransport(base, httpsig.SignConfig{Signer: cred, UserID: "123456"})
func NewTransport(base *http.Transport, cfg SignConfig) *Transport {
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{next: base, cfg: cfg}
}

// RoundTrip signs a copy of req and sends it through the wrapped
// transport. The caller's request keeps its headers and, when GetBody is
// set, a replayable body; req.Body itself is always closed. Each call
// computes a new Date and signature.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	signed := req.Clone(req.Context())

	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			_ = req.Body.Close()
			return nil, err
		}

		signed.Body = body
		_ = req.Body.Close()
	}

	if err := SignRequest(signed, t.cfg); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}

		return nil, err
	}

	return t.next.RoundTrip(signed)
}
