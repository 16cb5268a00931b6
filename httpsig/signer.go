package httpsig

// Signer creates RSA-SHA256 signatures over canonical request strings.
// *credential.Credential implements Signer.
type Signer interface {
	// Sign produces a signature over the given message bytes.
	Sign(message []byte) ([]byte, error)
}

// Verifier validates signatures over canonical request strings.
// *credential.Credential implements Verifier.
type Verifier interface {
	// Verify checks that signature is valid for the given message bytes.
	// Returns nil on success, non-nil on failure.
	Verify(message, signature []byte) error
}

// Header names produced and consumed by the signing pipeline.
const (
	HeaderDate          = "Date"
	HeaderContentSHA256 = "X-Content-SHA256"
	HeaderUserID        = "X-Digipost-UserId"
	HeaderSignature     = "X-Digipost-Signature"
)
