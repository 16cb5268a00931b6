package credential

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testIdentity struct {
	key  *rsa.PrivateKey
	cert *x509.Certificate
}

var (
	identityOnce sync.Once
	identity     testIdentity
	identityErr  error
)

// testKeyPair returns a shared self-signed RSA identity. Key generation is
// slow, so it is done once per test binary.
func testKeyPair(t *testing.T) testIdentity {
	t.Helper()

	identityOnce.Do(func() {
		identity, identityErr = newTestIdentity("digipost-test")
	})
	require.NoError(t, identityErr)

	return identity
}

func newTestIdentity(cn string) (testIdentity, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return testIdentity{}, err
	}

	cert, err := selfSign(cn, key)
	if err != nil {
		return testIdentity{}, err
	}

	return testIdentity{key: key, cert: cert}, nil
}

func selfSign(cn string, key crypto.Signer) (*x509.Certificate, error) {
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(4242),
		Subject:      pkix.Name{CommonName: cn, Organization: []string{"Digipost Test"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, key.Public(), key)
	if err != nil {
		return nil, err
	}

	return x509.ParseCertificate(der)
}

func (id testIdentity) certPEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: id.cert.Raw})
}

func (id testIdentity) pkcs1PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(id.key)})
}

func (id testIdentity) pkcs8PEM(t *testing.T) []byte {
	t.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(id.key)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}
