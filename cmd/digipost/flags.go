package main

import (
	"errors"
	"flag"
	"os"

	"github.com/vitalvas/digipost/credential"
	"github.com/vitalvas/digipost/internal/config"
)

var errNoCredential = errors.New("no credential given: use --config, --pkcs12 or --cert with --key")

// credentialFlags selects a credential either through a configuration file
// or directly from keystore files.
type credentialFlags struct {
	config      string
	pkcs12      string
	password    string
	cert        string
	key         string
	keyPassword string
}

func (f *credentialFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "Configuration file holding the credential")
	fs.StringVar(&f.pkcs12, "pkcs12", "", "PKCS#12 keystore file")
	fs.StringVar(&f.password, "password", os.Getenv("DIGIPOST_CERT_PASSWORD"), "PKCS#12 password (default $DIGIPOST_CERT_PASSWORD)")
	fs.StringVar(&f.cert, "cert", "", "PEM certificate file")
	fs.StringVar(&f.key, "key", "", "PEM private key file")
	fs.StringVar(&f.keyPassword, "key-password", "", "Password of an encrypted PEM private key")
}

func (f *credentialFlags) set() bool {
	return f.config != "" || f.pkcs12 != "" || f.cert != "" || f.key != ""
}

func (f *credentialFlags) load() (*credential.Credential, error) {
	switch {
	case f.config != "":
		cfg, err := config.Load(f.config)
		if err != nil {
			return nil, err
		}

		return cfg.LoadCredential()
	case f.pkcs12 != "":
		return credential.LoadPKCS12File(f.pkcs12, f.password)
	case f.cert != "" && f.key != "":
		return credential.LoadPEMFiles(f.cert, f.key, f.keyPassword)
	default:
		return nil, errNoCredential
	}
}
