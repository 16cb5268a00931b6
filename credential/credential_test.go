package credential

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/pem"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredential(t *testing.T) {
	id := testKeyPair(t)

	t.Run("valid pair", func(t *testing.T) {
		cred, err := newCredential(id.key, id.cert)
		require.NoError(t, err)
		assert.Same(t, id.cert, cred.Certificate())
	})

	t.Run("nil certificate", func(t *testing.T) {
		_, err := newCredential(id.key, nil)
		assert.ErrorIs(t, err, ErrInvalidCertificate)
	})

	t.Run("nil key", func(t *testing.T) {
		_, err := newCredential(nil, id.cert)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey)
	})

	t.Run("non-rsa key", func(t *testing.T) {
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		ecCert, err := selfSign("ec", ecKey)
		require.NoError(t, err)

		_, err = newCredential(ecKey, ecCert)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey)
		assert.Contains(t, err.Error(), "expected RSA key")
	})

	t.Run("any rsa key size is accepted", func(t *testing.T) {
		small, err := rsa.GenerateKey(rand.Reader, 1024)
		require.NoError(t, err)

		smallCert, err := selfSign("small", small)
		require.NoError(t, err)

		cred, err := newCredential(small, smallCert)
		require.NoError(t, err)
		assert.Equal(t, 1024, cred.Info().KeyBits)

		sig, err := cred.Sign([]byte("data"))
		require.NoError(t, err)
		assert.NoError(t, cred.Verify([]byte("data"), sig))
	})

	t.Run("key does not match certificate", func(t *testing.T) {
		other, err := newTestIdentity("other")
		require.NoError(t, err)

		_, err = newCredential(other.key, id.cert)
		assert.ErrorIs(t, err, ErrInvalidPrivateKey)
		assert.Contains(t, err.Error(), "does not match")
	})
}

func TestCredentialSign(t *testing.T) {
	id := testKeyPair(t)

	cred, err := newCredential(id.key, id.cert)
	require.NoError(t, err)

	t.Run("signature verifies under certificate key", func(t *testing.T) {
		message := []byte("GET\n/sender\ndate: Thu, 02 Jan 2025 08:00:00 GMT\nx-digipost-userid: 42\n\n")

		sig, err := cred.Sign(message)
		require.NoError(t, err)
		assert.Len(t, sig, 256)

		assert.NoError(t, cred.Verify(message, sig))

		certKey, ok := id.cert.PublicKey.(*rsa.PublicKey)
		require.True(t, ok)
		assert.True(t, certKey.Equal(cred.PublicKey()))
	})

	t.Run("signing twice verifies both times", func(t *testing.T) {
		message := []byte("POST\n/messages\n")

		first, err := cred.Sign(message)
		require.NoError(t, err)

		second, err := cred.Sign(message)
		require.NoError(t, err)

		assert.NoError(t, cred.Verify(message, first))
		assert.NoError(t, cred.Verify(message, second))
	})

	t.Run("tampered message fails verification", func(t *testing.T) {
		sig, err := cred.Sign([]byte("original"))
		require.NoError(t, err)

		assert.ErrorIs(t, cred.Verify([]byte("tampered"), sig), ErrSignatureInvalid)
	})

	t.Run("concurrent signing", func(t *testing.T) {
		var wg sync.WaitGroup

		errs := make(chan error, 16)
		for i := 0; i < 16; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()

				msg := []byte{byte(i)}
				sig, err := cred.Sign(msg)
				if err != nil {
					errs <- err
					return
				}
				errs <- cred.Verify(msg, sig)
			}()
		}

		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
	})
}

func TestCredentialIntrospection(t *testing.T) {
	id := testKeyPair(t)

	cred, err := newCredential(id.key, id.cert)
	require.NoError(t, err)

	t.Run("fingerprint is sha-256 of DER certificate", func(t *testing.T) {
		sum := sha256.Sum256(id.cert.Raw)
		assert.Equal(t, hex.EncodeToString(sum[:]), cred.Fingerprint())
		assert.Len(t, cred.Fingerprint(), 64)
	})

	t.Run("certificate PEM round trips", func(t *testing.T) {
		block, rest := pem.Decode([]byte(cred.CertificatePEM()))
		require.NotNil(t, block)
		assert.Empty(t, rest)
		assert.Equal(t, "CERTIFICATE", block.Type)
		assert.Equal(t, id.cert.Raw, block.Bytes)
	})

	t.Run("info", func(t *testing.T) {
		info := cred.Info()
		assert.Contains(t, info.Subject, "CN=digipost-test")
		assert.Equal(t, info.Subject, info.Issuer)
		assert.Equal(t, int64(4242), info.SerialNumber.Int64())
		assert.Equal(t, 2048, info.KeyBits)

		info.SerialNumber.SetInt64(1)
		assert.Equal(t, int64(4242), cred.Info().SerialNumber.Int64())
	})

	t.Run("validity", func(t *testing.T) {
		assert.True(t, cred.ValidAt(time.Now()))
		assert.False(t, cred.ValidAt(time.Now().Add(48*time.Hour)))
		assert.False(t, cred.ValidAt(time.Now().Add(-48*time.Hour)))
	})
}
