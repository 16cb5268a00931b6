package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionInfo := VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	registry := NewCommandRegistry(versionInfo, os.Stdout, os.Stderr)
	registerCommands(registry)

	if err := registry.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func registerCommands(r *CommandRegistry) {
	r.Register(&Command{
		Name:        "fingerprint",
		Description: "Show the fingerprint and certificate details of a credential",
		Usage:       "digipost fingerprint [--config file | --pkcs12 file | --cert file --key file] [flags]",
		Examples: []string{
			"digipost fingerprint --pkcs12 certificate.p12 --password secret",
			"digipost fingerprint --cert cert.pem --key key.pem --pem",
			"digipost fingerprint --config digipost.yaml",
		},
		Run: r.fingerprintCommand,
	})

	r.Register(&Command{
		Name:        "canonical",
		Description: "Print the canonical request, and optionally its signature headers",
		Usage:       "digipost canonical --url <url> [flags]",
		Examples: []string{
			"digipost canonical --url 'https://api.digipost.no/sender' --user-id 123456",
			"digipost canonical --method POST --url https://api.digipost.no/messages --body-file message.xml",
			"digipost canonical --url https://api.digipost.no/sender --user-id 123456 --pkcs12 certificate.p12",
		},
		Run: r.canonicalCommand,
	})

	r.Register(&Command{
		Name:        "get",
		Description: "Send a signed GET request and print the response body",
		Usage:       "digipost get <path> --config <file> [flags]",
		Examples: []string{
			"digipost get /sender --config digipost.yaml",
			"digipost get '/documents/events?offset=0&maxResults=10' --config digipost.yaml --debug",
		},
		Run: r.getCommand,
	})

	r.Register(&Command{
		Name:        "sender",
		Description: "Fetch information about the configured sender",
		Usage:       "digipost sender --config <file> [flags]",
		Examples: []string{
			"digipost sender --config digipost.yaml",
		},
		Run: r.senderCommand,
	})

	r.Register(&Command{
		Name:        "validate",
		Description: "Validate a configuration file and its credential",
		Usage:       "digipost validate <config-file>",
		Examples: []string{
			"digipost validate digipost.yaml",
		},
		Run: r.validateCommand,
	})

	r.Register(&Command{
		Name:        "version",
		Description: "Show version information",
		Usage:       "digipost version",
		Run:         r.versionCommand,
	})
}
