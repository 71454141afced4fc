// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optparse tokenizes a command line, matches it against a registry
// of options and positional slots, and can rebuild the part of the command
// line it did not recognize.
//
// The library follows these rules:
//   - "--name value", "--name=value", "-n value", "-nvalue" and "-n=value" all set a value
//   - short switches bundle: "-abc" is -a -b -c
//   - a value that fails to convert is left in place and tokenized again
//   - "--" ends option processing; everything after it is positional
//   - unknown options and surplus values are collected, not rejected
//
// # Basic Usage
//
//	p := optparse.New(optparse.Config{GenerateHelp: true})
//	p.AddOption(&optparse.Option{Short: 'v', Long: "verbose", Type: optparse.Bool})
//	p.AddOption(&optparse.Option{Short: 'n', Long: "count", Type: optparse.Int, Default: int64(1)})
//	p.AddSlot(&optparse.Slot{Name: "FILE", Required: true})
//
//	res, ok, err := p.Parse(os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !ok {
//	    os.Exit(2)
//	}
//	count, _ := optparse.Get[int64](res, "count")
//	file, _ := res.Value("FILE")
//
// # Forwarding Leftovers
//
// With Config.AllowUnexpected set, Result.Residual returns the unrecognized
// part of the command line, re-quoted so it can be handed to another
// program:
//
//	res := p.Scan([]string{"-v", "-x", "a.txt", "b c"})
//	res.Residual() // -x "b c"
//
// # Setters
//
// Option.Set and Slot.Set are called only after the whole command line
// validated: first with the defaults of options that were not given, then
// with each option occurrence in command-line order, then with each filled
// slot.
package optparse
