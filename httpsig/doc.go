// Package httpsig implements the request signature scheme of the Digipost
// API: an RSA-SHA256 signature over a canonical request string, carried in
// the X-Digipost-Signature header.
//
// It provides client-side signing (via Transport) and server-side
// verification (via Middleware), the latter mainly for test doubles of the
// Digipost API.
//
// # Canonical Request
//
// The signed string consists of these lines, each terminated by "\n"
// including the last:
//
//	POST
//	/messages
//	date: Tue, 01 Jan 2025 12:00:00 GMT
//	x-content-sha256: auinVVUgn9bEQVfArtgBbnY/9DWhnPGG92hjFAFD/3I=
//	x-digipost-userid: 123456
//	<lowercased query string, possibly empty>
//
// The x-content-sha256 line is present only when the request has a body.
// NewCanonicalRequest never fails; missing headers become empty values.
//
// # Signing Requests
//
// Use SignRequest to add the signature headers to an HTTP request:
//
//	cred, err := credential.LoadPKCS12File("certificate.p12", password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = httpsig.SignRequest(req, httpsig.SignConfig{
//	    Signer: cred,
//	    UserID: "123456",
//	})
//
// Prepare computes the same headers without touching a request.
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs every outgoing
// request. Pass an *http.Transport to configure proxy, TLS, and timeout
// settings. Pass nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: httpsig.NewTransport(nil, httpsig.SignConfig{
//	        Signer: cred,
//	        UserID: "123456",
//	    }),
//	}
//
// Each attempt is signed again with a fresh Date header; a signature is
// not reusable across retries.
//
// # Verifying Requests
//
//	err := httpsig.VerifyRequest(req, httpsig.VerifyConfig{
//	    Verifier: cred,
//	    MaxSkew:  5 * time.Minute,
//	})
package httpsig
