package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/vitalvas/digipost/httpsig"
)

func (r *CommandRegistry) canonicalCommand(args []string) error {
	fs := r.flagSet("canonical")

	method := fs.String("method", http.MethodGet, "HTTP method")
	rawURL := fs.String("url", "", "Request URL (required)")
	dateValue := fs.String("date", "", "Date header value (default: current time)")
	userID := fs.String("user-id", "", "Sender or broker ID sent as X-Digipost-UserId")
	bodyFile := fs.String("body-file", "", "File holding the request body")

	var creds credentialFlags
	creds.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rawURL == "" {
		fs.Usage()
		return errors.New("--url is required")
	}

	u, err := url.Parse(*rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	var body []byte
	if *bodyFile != "" {
		body, err = os.ReadFile(*bodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
	}

	header := make(http.Header)
	if *dateValue != "" {
		header.Set(httpsig.HeaderDate, *dateValue)
	}

	if !creds.set() {
		if *dateValue == "" {
			header.Set(httpsig.HeaderDate, timeNow().UTC().Format(http.TimeFormat))
		}

		header.Set(httpsig.HeaderUserID, *userID)

		if len(body) > 0 {
			header.Set(httpsig.HeaderContentSHA256, httpsig.ContentHash(body))
		}

		fmt.Fprint(r.stdout, httpsig.NewCanonicalRequest(*method, u, header).String())

		return nil
	}

	cred, err := creds.load()
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}

	signed, err := httpsig.Prepare(*method, u, header, body, httpsig.SignConfig{
		Signer: cred,
		UserID: *userID,
		Now:    timeNow,
	})
	if err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	signed.Apply(header)

	fmt.Fprint(r.stdout, httpsig.NewCanonicalRequest(*method, u, header).String())
	fmt.Fprintln(r.stdout, "")

	fmt.Fprintf(r.stdout, "%s: %s\n", httpsig.HeaderDate, signed.Date)

	if signed.ContentSHA256 != "" {
		fmt.Fprintf(r.stdout, "%s: %s\n", httpsig.HeaderContentSHA256, signed.ContentSHA256)
	}

	fmt.Fprintf(r.stdout, "%s: %s\n", httpsig.HeaderUserID, signed.UserID)
	fmt.Fprintf(r.stdout, "%s: %s\n", httpsig.HeaderSignature, signed.Signature)

	return nil
}
