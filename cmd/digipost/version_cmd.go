package main

import "fmt"

func (r *CommandRegistry) versionCommand(_ []string) error {
	fmt.Fprintf(r.stdout, "digipost %s\n", r.version.Version)
	fmt.Fprintf(r.stdout, "  commit: %s\n", r.version.Commit)
	fmt.Fprintf(r.stdout, "  built:  %s\n", r.version.Date)

	return nil
}
