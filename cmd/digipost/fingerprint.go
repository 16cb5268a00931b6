package main

import (
	"fmt"
	"time"
)

func (r *CommandRegistry) fingerprintCommand(args []string) error {
	fs := r.flagSet("fingerprint")

	var creds credentialFlags
	creds.register(fs)
	showPEM := fs.Bool("pem", false, "Also print the certificate in PEM form")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cred, err := creds.load()
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}

	info := cred.Info()

	fmt.Fprintf(r.stdout, "Fingerprint: %s\n", cred.Fingerprint())
	fmt.Fprintf(r.stdout, "Subject:     %s\n", info.Subject)
	fmt.Fprintf(r.stdout, "Issuer:      %s\n", info.Issuer)
	fmt.Fprintf(r.stdout, "Serial:      %s\n", info.SerialNumber)
	fmt.Fprintf(r.stdout, "Not before:  %s\n", info.NotBefore.UTC().Format(time.RFC3339))
	fmt.Fprintf(r.stdout, "Not after:   %s\n", info.NotAfter.UTC().Format(time.RFC3339))
	fmt.Fprintf(r.stdout, "Key size:    %d bits\n", info.KeyBits)

	if *showPEM {
		fmt.Fprintln(r.stdout, "")
		fmt.Fprint(r.stdout, cred.CertificatePEM())
	}

	return nil
}
