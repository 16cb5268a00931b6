package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitalvas/digipost/digipost"
	"github.com/vitalvas/digipost/internal/config"
)

var timeNow = time.Now

// clientFlags are shared by the commands that talk to the API.
type clientFlags struct {
	config string
	debug  bool
}

func (f *clientFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "digipost.yaml", "Configuration file")
	fs.BoolVar(&f.debug, "debug", false, "Log requests at debug level")
}

func (r *CommandRegistry) newClient(f clientFlags) (*digipost.Client, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if f.debug {
		cfg.Log.Level = "debug"
	}

	sender, err := cfg.Sender()
	if err != nil {
		return nil, err
	}

	cred, err := cfg.LoadCredential()
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	logger := cfg.Log.NewLogger(r.stderr)

	return digipost.NewClient(cfg.ClientConfig(logger), sender, cred)
}

func (r *CommandRegistry) getCommand(args []string) error {
	fs := r.flagSet("get")

	var flags clientFlags
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("request path required")
	}

	return r.fetch(flags, fs.Arg(0))
}

func (r *CommandRegistry) senderCommand(args []string) error {
	fs := r.flagSet("sender")

	var flags clientFlags
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	return r.fetch(flags, "/sender")
}

func (r *CommandRegistry) fetch(flags clientFlags, path string) error {
	client, err := r.newClient(flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	body, err := client.Get(ctx, path, nil)
	if err != nil {
		return err
	}

	if _, err := r.stdout.Write(body); err != nil {
		return err
	}

	if len(body) > 0 && body[len(body)-1] != '\n' {
		fmt.Fprintln(r.stdout, "")
	}

	return nil
}
