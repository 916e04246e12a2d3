package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"

	"ulidkit/internal/tools"
	"ulidkit/pkg/ulid"
)

func genCommand(stdout io.Writer) *ffcli.Command {
	var (
		fs     = flag.NewFlagSet("uidstress gen", flag.ContinueOnError)
		n      = fs.Int("n", 1, "number of IDs to print")
		scheme = fs.String("scheme", "ulid", "ID scheme")
	)
	return &ffcli.Command{
		Name:       "gen",
		ShortUsage: "uidstress gen [-n N] [-scheme S]",
		ShortHelp:  "Print freshly generated IDs.",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			s, err := tools.Lookup(*scheme)
			if err != nil {
				return err
			}
			for range *n {
				fmt.Fprintln(stdout, s.Generate())
			}
			return nil
		},
	}
}

func inspectCommand(stdout io.Writer) *ffcli.Command {
	return &ffcli.Command{
		Name:       "inspect",
		ShortUsage: "uidstress inspect <ulid> [<ulid> ...]",
		ShortHelp:  "Decode ULIDs and print their fields.",
		Exec: func(_ context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("inspect: at least one ULID is required")
			}
			var errs []error
			for _, arg := range args {
				id, err := ulid.Parse(arg)
				if err != nil {
					errs = append(errs, fmt.Errorf("inspect %q: %w", arg, err))
					continue
				}
				printULID(stdout, id)
			}
			return errors.Join(errs...)
		},
	}
}

func printULID(w io.Writer, id ulid.ULID) {
	fmt.Fprintf(w, "ULID:          %s\n", id)
	fmt.Fprintf(w, "Timestamp:     %d\n", id.Timestamp())
	fmt.Fprintf(w, "Time:          %s\n", id.Time().Format(time.RFC3339Nano))
	fmt.Fprintf(w, "Randomness:    %s\n", hex.EncodeToString(id.Entropy()))
	fmt.Fprintf(w, "Bytes:         %s\n", hex.EncodeToString(id.Bytes()))
}

func versionCommand(stdout io.Writer) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "uidstress version",
		ShortHelp:  "Print version information.",
		Exec: func(context.Context, []string) error {
			fmt.Fprintf(stdout, "uidstress %s\n", version)
			return nil
		},
	}
}
