package httpsig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// rsaKey mirrors credential.Credential: RSASSA-PKCS1-v1_5 with SHA-256.
type rsaKey struct {
	key *rsa.PrivateKey
}

func (k rsaKey) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)

	return rsa.SignPKCS1v15(rand.Reader, k.key, crypto.SHA256, digest[:])
}

func (k rsaKey) Verify(message, signature []byte) error {
	digest := sha256.Sum256(message)

	return rsa.VerifyPKCS1v15(&k.key.PublicKey, crypto.SHA256, digest[:], signature)
}

var (
	testKeyOnce sync.Once
	testKey     rsaKey
	testKeyErr  error
)

func testSigner(t *testing.T) rsaKey {
	t.Helper()

	testKeyOnce.Do(func() {
		var key *rsa.PrivateKey
		key, testKeyErr = rsa.GenerateKey(rand.Reader, 2048)
		testKey = rsaKey{key: key}
	})
	require.NoError(t, testKeyErr)

	return testKey
}

type errSigner struct {
	err error
}

func (s errSigner) Sign([]byte) ([]byte, error) { return nil, s.err }

// recordingSigner captures the last message it was asked to sign.
type recordingSigner struct {
	mu      sync.Mutex
	message []byte
}

func (s *recordingSigner) Sign(message []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = append([]byte(nil), message...)

	return []byte("signature"), nil
}

func (s *recordingSigner) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return string(s.message)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read error") }
func (errReader) Close() error             { return nil }
