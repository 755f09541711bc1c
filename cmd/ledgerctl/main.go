// Command ledgerctl inspects a ticket log offline: it verifies frames, prints
// tickets in priority order, and exports them as a compressed CBOR sequence.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

const usage = `Usage: ledgerctl <command> [flags] LOGFILE

Commands:
  verify   check every frame and report damaged frames and tail bytes
  dump     print tickets in priority order
  export   write tickets in priority order as zstd-compressed CBOR
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	command, rest := args[0], args[1:]
	flagSet := pflag.NewFlagSet(command, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	switch command {
	case "verify":
		strict := flagSet.Bool("strict", false, "fail when any frame is damaged")
		path, err := parse(flagSet, rest)
		if err != nil {
			return err
		}
		return verify(ctx, stdout, path, *strict)
	case "dump":
		email := flagSet.String("email", "", "only tickets booked with this email")
		path, err := parse(flagSet, rest)
		if err != nil {
			return err
		}
		return dump(ctx, stdout, path, *email)
	case "export":
		out := flagSet.StringP("out", "o", "", "output file (.zst)")
		path, err := parse(flagSet, rest)
		if err != nil {
			return err
		}
		if *out == "" {
			return fmt.Errorf("%w: export needs --out", errUsage)
		}
		return export(ctx, stdout, path, *out)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func parse(flagSet *pflag.FlagSet, args []string) (string, error) {
	if err := flagSet.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if flagSet.NArg() != 1 {
		return "", fmt.Errorf("%w: expected one LOGFILE", errUsage)
	}
	return flagSet.Arg(0), nil
}
