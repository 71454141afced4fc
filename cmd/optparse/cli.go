// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shayne/yargs"
	"github.com/yeetrun/optparse/pkg/cmdutil"
	"github.com/yeetrun/optparse/pkg/optparse"
	"github.com/yeetrun/optparse/pkg/render"
	"github.com/yeetrun/optparse/pkg/schema"
	"github.com/yeetrun/optparse/pkg/tui"
)

const schemaEnv = "OPTPARSE_SCHEMA"

type parseFlagsParsed struct {
	Schema          string `flag:"schema" help:"Schema file (OPTPARSE_SCHEMA, else optparse.toml/yaml in a parent directory)"`
	Format          string `flag:"format" help:"Output format: text, json or env"`
	Strict          bool   `flag:"strict" help:"Report validation failures instead of printing help"`
	AllowUnexpected bool   `flag:"allow-unexpected" help:"Accept unknown options and surplus values"`
}

type schemaFlagsParsed struct {
	Schema string `flag:"schema" help:"Schema file (OPTPARSE_SCHEMA, else optparse.toml/yaml in a parent directory)"`
}

type initFlagsParsed struct {
	Format string `flag:"format" help:"Schema format: toml or yaml"`
	Force  bool   `flag:"force" help:"Replace an existing file"`
}

func stripCommand(args []string, name string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

// resolveSchemaPath picks the schema file: the flag, then the environment,
// then the nearest schema file above the working directory.
func resolveSchemaPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(schemaEnv); env != "" {
		return env, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, err := schema.Find(cwd)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			return "", fmt.Errorf("%w in %s or its parents; run 'optparse init' to create one", err, cwd)
		}
		return "", err
	}
	return path, nil
}

func loadParser(schemaFlag string, cfg optparse.Config) (*optparse.Parser, *schema.Values, error) {
	path, err := resolveSchemaPath(schemaFlag)
	if err != nil {
		return nil, nil, err
	}
	vlogf("using schema %s", path)
	doc, err := schema.Load(path)
	if err != nil {
		return nil, nil, err
	}
	cfg.Output = stdout
	if globalFlags.Verbose {
		cfg.Logf = vlogf
	}
	p, vals, err := schema.Build(doc, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build parser from %s: %w", path, err)
	}
	return p, vals, nil
}

func noPositionals(cmd string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: unexpected argument %q; put the command line to parse after --", cmd, args[0])
	}
	return nil
}

func handleParse(_ context.Context, args []string) error {
	args = stripCommand(args, "parse")
	result, err := yargs.ParseFlags[parseFlagsParsed](args)
	if err != nil {
		return err
	}
	if err := noPositionals("parse", result.Args); err != nil {
		return err
	}
	format, err := render.ParseFormat(result.Flags.Format)
	if err != nil {
		return err
	}

	p, _, err := loadParser(result.Flags.Schema, optparse.Config{
		Strict:          result.Flags.Strict,
		AllowUnexpected: result.Flags.AllowUnexpected,
	})
	if err != nil {
		return err
	}
	res, ok, err := p.Parse(forwardedArgs)
	var verr *optparse.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if ok || verr != nil {
		var reportErr error
		if verr != nil {
			reportErr = verr
		}
		colors := tui.NewColorizer(!globalFlags.NoColor, os.Stdout)
		if err := render.Write(stdout, render.NewReport(p, res, reportErr), format, colors); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	if !ok {
		vlogf("parse did not succeed, exiting with status 2")
		return errStop
	}
	return nil
}

func handleResidual(_ context.Context, args []string) error {
	args = stripCommand(args, "residual")
	result, err := yargs.ParseFlags[schemaFlagsParsed](args)
	if err != nil {
		return err
	}
	if err := noPositionals("residual", result.Args); err != nil {
		return err
	}
	p, _, err := loadParser(result.Flags.Schema, optparse.Config{AllowUnexpected: true})
	if err != nil {
		return err
	}
	res := p.Scan(forwardedArgs)
	vlogf("%d unexpected item(s), escape marker at %d", len(res.Unexpected), res.EscapeIndex)
	fmt.Fprintln(stdout, res.Residual())
	return nil
}

func handleUsage(_ context.Context, args []string) error {
	args = stripCommand(args, "usage")
	result, err := yargs.ParseFlags[schemaFlagsParsed](args)
	if err != nil {
		return err
	}
	if err := noPositionals("usage", result.Args); err != nil {
		return err
	}
	p, _, err := loadParser(result.Flags.Schema, optparse.Config{})
	if err != nil {
		return err
	}
	return p.WriteHelp(stdout)
}

func handleInit(_ context.Context, args []string) error {
	args = stripCommand(args, "init")
	result, err := yargs.ParseFlags[initFlagsParsed](args)
	if err != nil {
		return err
	}
	if len(result.Args) > 1 {
		return fmt.Errorf("init takes at most one argument")
	}

	var path string
	switch {
	case len(result.Args) == 1:
		path = result.Args[0]
	case result.Flags.Format != "":
		f, err := schema.ParseFormat(result.Flags.Format)
		if err != nil {
			return err
		}
		path = "optparse." + f.String()
	default:
		path = schema.FileNames[0]
	}
	if result.Flags.Format != "" {
		f, err := schema.ParseFormat(result.Flags.Format)
		if err != nil {
			return err
		}
		if got := schema.FormatOf(path); got != f {
			return fmt.Errorf("%s would be written as %s, not %s", path, got, f)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	name := filepath.Base(filepath.Dir(abs))
	force := result.Flags.Force
	if _, err := os.Stat(path); err == nil && !force && isInteractive() {
		ok, err := cmdutil.Confirm(stdin, stdout, fmt.Sprintf("%s already exists. Replace it?", path))
		if err != nil {
			return err
		}
		if !ok {
			return errStop
		}
		force = true
	}
	if err := schema.Save(path, schema.Starter(name), force); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists; use --force to replace it", path)
		}
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
