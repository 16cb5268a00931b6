package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/vitalvas/digipost/internal/config"
)

func (r *CommandRegistry) validateCommand(args []string) error {
	fs := r.flagSet("validate")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("config file path required")
	}

	path := fs.Arg(0)

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cred, err := cfg.LoadCredential()
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}

	client := cfg.ClientConfig(nil)
	info := cred.Info()

	fmt.Fprintf(r.stdout, "✓ Valid configuration: %s\n", path)
	fmt.Fprintf(r.stdout, "  Environment: %s\n", cfg.Environment)
	fmt.Fprintf(r.stdout, "  API URL:     %s\n", client.APIURL)
	fmt.Fprintf(r.stdout, "  Sender ID:   %d\n", cfg.SenderID)
	fmt.Fprintf(r.stdout, "  Certificate: %s\n", info.Subject)
	fmt.Fprintf(r.stdout, "  Fingerprint: %s\n", cred.Fingerprint())
	fmt.Fprintf(r.stdout, "  Expires:     %s\n", info.NotAfter.UTC().Format(time.RFC3339))

	if !cred.ValidAt(timeNow()) {
		fmt.Fprintln(r.stdout, "  ⚠ Certificate is not valid at the current time")
	}

	return nil
}
