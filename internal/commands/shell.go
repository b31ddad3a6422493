package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/shlex"
	"golang.org/x/text/message"

	"github.com/klabast/wb-services/aktivitaeten/internal/app"
	"github.com/klabast/wb-services/aktivitaeten/internal/i18n"
	"github.com/klabast/wb-services/aktivitaeten/internal/logging"
)

// Shell is an interactive terminal front-end for a SyncClient.
type Shell struct {
	client *app.SyncClient
	reader *bufio.Reader
	out    io.Writer
	p      *message.Printer
}

// NewShell creates a shell reading commands from reader. The reader must be
// the same one the client's Prompter uses.
func NewShell(client *app.SyncClient, reader *bufio.Reader, out io.Writer, p *message.Printer) *Shell {
	return &Shell{client: client, reader: reader, out: out, p: p}
}

// RunShell handles the shell subcommand
func RunShell(args []string) {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aktivitaeten shell [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Interactive terminal client for the activities API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AKTIVITAETEN_API_URL    Base URL of the activities API\n")
		fmt.Fprintf(os.Stderr, "  AKTIVITAETEN_LANG       UI language (de, en)\n")
	}
	fs.Parse(args)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Diagnostics go to stderr so they do not interleave with the page.
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	backend, err := cfg.NewAPIClient(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tag := i18n.Parse(cfg.Lang)
	p := i18n.Printer(tag)
	reader := bufio.NewReader(os.Stdin)

	client, err := app.New(backend, app.Options{
		Logger:         logger,
		Confirmer:      NewPrompter(os.Stdin, reader, os.Stdout, p.Sprintf(i18n.ShellConfirmSuffix)),
		Language:       tag,
		MessageTimeout: cfg.MessageTimeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := client.Run(ctx); err != nil {
			logger.Error("Event loop stopped", "error", err)
		}
	}()

	if err := NewShell(client, reader, os.Stdout, p).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Run reads and executes commands until quit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, s.p.Sprintf(i18n.ShellHelp))
	if err := s.printView(ctx); err != nil {
		return err
	}

	for {
		fmt.Fprint(s.out, "> ")
		line, err := s.reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		quit, err := s.execute(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// execute runs a single command line. It reports whether the shell should exit.
func (s *Shell) execute(ctx context.Context, line string) (bool, error) {
	args, err := splitArgs(line)
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", err)
		return false, nil
	}
	if len(args) == 0 {
		return false, nil
	}

	var ev app.Event
	switch strings.ToLower(args[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, s.p.Sprintf(i18n.ShellHelp))
		return false, nil
	case "list":
		return false, s.printView(ctx)
	case "reload":
		ev = app.Event{Action: app.ActionLoad}
	case "signup":
		if len(args) != 3 {
			fmt.Fprintln(s.out, s.p.Sprintf(i18n.ShellUsageSignup))
			return false, nil
		}
		ev = app.Event{Action: app.ActionSignup, Activity: args[1], Email: args[2]}
	case "remove":
		if len(args) != 3 {
			fmt.Fprintln(s.out, s.p.Sprintf(i18n.ShellUsageRemove))
			return false, nil
		}
		ev = app.Event{Action: app.ActionRemove, Activity: args[1], Email: args[2]}
	default:
		fmt.Fprintln(s.out, s.p.Sprintf(i18n.ShellUnknown, args[0]))
		return false, nil
	}

	if err := s.client.Submit(ctx, ev); err != nil && isFatal(err) {
		return false, err
	}
	return false, s.printView(ctx)
}

func (s *Shell) printView(ctx context.Context) error {
	v, err := s.client.View(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, v.String())
	return nil
}

// isFatal reports errors that end the shell. Everything else has already
// been shown on the page.
func isFatal(err error) bool {
	return errors.Is(err, app.ErrStopped) || errors.Is(err, context.Canceled)
}

// splitArgs splits a command line into words using shell quoting rules, so
// activity names with spaces can be quoted.
func splitArgs(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", strings.TrimSpace(line), err)
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args, nil
}
