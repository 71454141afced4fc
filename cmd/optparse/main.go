// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shayne/yargs"
	"golang.org/x/term"
)

var (
	// forwardedArgs holds everything after the first "--". It is the
	// command line handed to the schema parser and never seen by yargs.
	forwardedArgs []string
	globalFlags   globalFlagsParsed

	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	isInteractive = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// errStop is returned by handlers when the parsed command line should not
// be acted on: help was shown, validation failed or a prompt was declined.
var errStop = errors.New("stop")

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" help:"Log matching decisions to stderr"`
	NoColor bool `flag:"no-color" help:"Disable coloured output (also NO_COLOR)"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// splitForwarded cuts args at the first "--".
func splitForwarded(args []string) (head, tail []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, err)
}

func vlogf(format string, args ...any) {
	if globalFlags.Verbose {
		log.Printf(format, args...)
	}
}

func run(ctx context.Context, args []string) int {
	log.SetOutput(stderr)
	head, tail := splitForwarded(args)
	forwardedArgs = tail

	flags, remaining, err := parseGlobalFlags(head)
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	globalFlags = flags

	handlers := map[string]yargs.SubcommandHandler{
		"parse":    handleParse,
		"residual": handleResidual,
		"usage":    handleUsage,
		"init":     handleInit,
	}
	err = yargs.RunSubcommands(ctx, remaining, buildHelpConfig(), globalFlagsParsed{}, handlers)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errStop):
		return 2
	}
	printCLIError(stderr, err)
	return 1
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("optparse: ")
	os.Exit(run(context.Background(), os.Args[1:]))
}

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "optparse",
			Description: "Parse a command line against an option schema and show what matched and what was left over.",
			Examples: []string{
				"optparse init",
				"optparse parse -- -v --count=3 input.txt",
				"optparse parse --format=env -- -v input.txt",
				"optparse residual -- -v --unknown x input.txt",
				"optparse usage --schema ./cli.yaml",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"parse": {
				Name:        "parse",
				Description: "Parse the arguments after -- and print the result",
				Usage:       "[--schema=PATH] [--format=text|json|env] [--strict] [--allow-unexpected] -- ARGS...",
				Examples:    []string{"optparse parse --format=json -- -n 3 in.txt"},
			},
			"residual": {
				Name:        "residual",
				Description: "Print the part of the arguments after -- that the schema did not consume",
				Usage:       "[--schema=PATH] -- ARGS...",
			},
			"usage": {
				Name:        "usage",
				Description: "Print the help page the schema produces",
				Usage:       "[--schema=PATH]",
			},
			"init": {
				Name:        "init",
				Description: "Write a starter schema",
				Usage:       "[--format=toml|yaml] [--force] [PATH]",
				Examples:    []string{"optparse init", "optparse init --format=yaml"},
			},
		},
	}
}
