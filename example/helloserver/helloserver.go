// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/yeetrun/optparse/pkg/optparse"
)

func main() {
	addr := ":8080"
	greeting := "Hello, world!"

	// Arguments meant for a wrapper or sidecar pass through untouched and
	// are reported under /args.
	p := optparse.New(optparse.Config{AllowUnexpected: true, GenerateHelp: true,
		App: optparse.AppInfo{Binary: "helloserver"}})
	for _, o := range []*optparse.Option{
		{Short: 'a', Long: "addr", Type: optparse.String, Description: "Listen address.",
			Set: func(v any) error { addr = v.(string); return nil }},
		{Short: 'g', Long: "greeting", Type: optparse.String, Description: "Response body.",
			Set: func(v any) error { greeting = v.(string); return nil }},
	} {
		if err := p.AddOption(o); err != nil {
			log.Fatal(err)
		}
	}
	res, ok, err := p.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(2)
	}
	rest := res.Residual()
	if rest != "" {
		log.Printf("passing through: %s", rest)
	}

	log.Fatal(http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/env":
			fmt.Fprintln(w, os.Environ())
		case "/args":
			fmt.Fprintln(w, rest)
		default:
			fmt.Fprintln(w, greeting)
		}
	})))
}
