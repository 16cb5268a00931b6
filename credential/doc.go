// Package credential loads the certificate-bound RSA key used to sign
// Digipost API requests.
//
// A Credential is created once, from a PKCS#12 container or from a PEM
// certificate and key pair, and then shared by every request a client
// sends. It is immutable and safe for concurrent use.
//
// # Loading
//
//	cred, err := credential.LoadPKCS12File("certificate.p12", os.Getenv("P12_PASSWORD"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// PEM pairs are supported as well, including password-protected keys:
//
//	cred, err := credential.LoadPEMFiles("cert.pem", "key.pem", "secret")
//
// # Errors
//
// Loading failures are reported as wrapped sentinel errors that can be
// tested with errors.Is:
//
//   - ErrFileNotFound, ErrUnreadable: the file could not be read
//   - ErrInvalidContainer: bad PKCS#12 data or wrong password
//   - ErrInvalidPrivateKey: key missing, not RSA, too small, or not
//     matching the certificate
//   - ErrInvalidCertificate: certificate missing or unparsable
//
// # Signing
//
// Sign produces an RSASSA-PKCS1-v1_5 SHA-256 signature. Fingerprint and
// CertificatePEM expose the certificate for diagnostics; the private key
// never leaves the Credential.
package credential
