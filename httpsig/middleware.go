package httpsig

import (
	"errors"
	"net/http"

	"github.com/beevik/etree"
)

// MiddlewareConfig configures signature checking for incoming requests.
type MiddlewareConfig struct {
	Verify VerifyConfig

	// OnError replies to a request that failed verification. Defaults to a
	// 401 with a Digipost XML error envelope.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware rejects requests whose X-Digipost-Signature does not verify
// and passes the rest, with their body intact, to the next handler.
//
// It returns ErrNoVerifier if VerifyConfig.Verifier is nil.
func Middleware(cfg MiddlewareConfig) (func(http.Handler) http.Handler, error) {
	if cfg.Verify.Verifier == nil {
		return nil, ErrNoVerifier
	}

	reject := cfg.OnError
	if reject == nil {
		reject = writeErrorEnvelope
	}

	verify := cfg.Verify

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := VerifyRequest(r, verify)
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			reject(w, r, err)
		})
	}, nil
}

// errorCode maps a verification failure to the error-code of the
// envelope.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrSignatureNotFound), errors.Is(err, ErrMalformedHeader):
		return "MISSING_OR_MALFORMED_SIGNATURE"
	case errors.Is(err, ErrSignatureExpired):
		return "REQUEST_EXPIRED"
	case errors.Is(err, ErrContentHashMismatch), errors.Is(err, ErrContentHashNotFound):
		return "CONTENT_HASH_MISMATCH"
	case errors.Is(err, ErrUserIDMismatch):
		return "UNKNOWN_USER"
	default:
		return "INVALID_SIGNATURE"
	}
}

func writeErrorEnvelope(w http.ResponseWriter, _ *http.Request, err error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("error")
	root.CreateElement("error-code").SetText(errorCode(err))
	root.CreateElement("error-message").SetText(err.Error())
	root.CreateElement("error-type").SetText("CLIENT_SECURITY")

	body, encErr := doc.WriteToBytes()
	if encErr != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=UTF-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(body)
}
