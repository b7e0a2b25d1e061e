package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/handover"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// Exit statuses. handover.ExitCode (88) is reserved for terminal handover.
const (
	ExitOK                = 0
	ExitGeneric           = 1
	ExitUsage             = 2
	ExitUnknownRepository = 3
	ExitTmuxMissing       = 4
	ExitSessionCreate     = 5
)

// exitRequest carries a status requested through kong's Exit hook (help,
// version) out of the parser without terminating the process.
type exitRequest struct {
	code int
}

// ExitCode maps an error returned by a command to a process exit status.
// Only a *handover.Request maps to handover.ExitCode.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var req *handover.Request
	if errors.As(err, &req) {
		return handover.ExitCode
	}

	switch {
	case errors.Is(err, domain.ErrUnknownRepository):
		return ExitUnknownRepository
	case errors.Is(err, ports.ErrTmuxNotInstalled):
		return ExitTmuxMissing
	case errors.Is(err, ports.ErrSessionCreate):
		return ExitSessionCreate
	}

	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		if code := coder.ExitCode(); code != handover.ExitCode && code != ExitOK {
			return code
		}
	}
	return ExitGeneric
}

// Execute parses args, runs the selected command and returns the exit
// status. It is the only place that turns errors into statuses and the
// only place that emits a handover.
func Execute(args []string, stdout, stderr io.Writer) (code int) {
	cli := &CLI{stderr: stderr, stdout: stdout}

	parser, err := kong.New(cli,
		kong.Name("pd"),
		kong.Description(Tagline),
		kong.Vars{
			"version": VersionInfo(),
		},
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitRequest{code: code}) }),
		kong.Bind(cli),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitGeneric
	}

	defer logging.Close()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		req, ok := r.(exitRequest)
		if !ok {
			panic(r)
		}
		_ = cli.Close()
		code = req.code
		if code == handover.ExitCode {
			code = ExitGeneric
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		_ = cli.Close()
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(stderr, "pd: error: %v\n", err)
			if parseErr.Context != nil {
				_ = parseErr.Context.PrintUsage(true)
			}
			return ExitUsage
		}
		printError(stderr, err)
		return ExitCode(err)
	}

	runErr := kctx.Run()
	if closeErr := cli.Close(); closeErr != nil {
		logging.Logger.Warn("Failed to close resources", "error", closeErr)
	}

	var req *handover.Request
	if errors.As(runErr, &req) {
		logging.Logger.Info("Handing over terminal", "repo_id", req.RepoID)
		if err := handover.Announce(stdout, req.RepoID); err != nil {
			printError(stderr, err)
			return ExitGeneric
		}
		return handover.ExitCode
	}

	if runErr != nil {
		printError(stderr, runErr)
		return ExitCode(runErr)
	}
	return ExitOK
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	switch {
	case errors.Is(err, domain.ErrUnknownRepository):
		fmt.Fprintln(w, "Run 'pd list' to see registered repositories.")
	case errors.Is(err, ports.ErrSessionCreate):
		fmt.Fprintln(w, "The target session is not ready; re-run the switch once the problem is fixed.")
	}
}
