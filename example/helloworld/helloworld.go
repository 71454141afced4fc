// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/yeetrun/optparse/pkg/optparse"
)

func main() {
	var (
		count    int64 = 3
		name           = "World"
		interval       = 2 * time.Second
		shout    bool
	)
	p := optparse.New(optparse.Config{
		GenerateHelp: true,
		App:          optparse.AppInfo{Name: "helloworld", Version: "1.0.0", Binary: "helloworld"},
	})
	opts := []*optparse.Option{
		{Short: 'n', Long: "count", Type: optparse.Int, Default: count, Description: "Number of greetings.",
			Set: func(v any) error { count = v.(int64); return nil }},
		{Short: 'i', Long: "interval", Type: optparse.Duration, Default: interval, Description: "Pause between greetings.",
			Set: func(v any) error { interval = v.(time.Duration); return nil }},
		{Short: 's', Long: "shout", Type: optparse.Bool, Description: "Greet in capitals.",
			Set: func(v any) error { shout = v.(bool); return nil }},
	}
	for _, o := range opts {
		if err := p.AddOption(o); err != nil {
			log.Fatal(err)
		}
	}
	if err := p.AddSlot(&optparse.Slot{Name: "NAME", Description: "Who to greet.",
		Set: func(v string) error { name = v; return nil }}); err != nil {
		log.Fatal(err)
	}

	_, ok, err := p.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(2)
	}

	msg := fmt.Sprintf("Hello, %s!", name)
	if shout {
		msg = strings.ToUpper(msg)
	}
	for i := int64(0); i < count; i++ {
		if i > 0 {
			time.Sleep(interval)
		}
		fmt.Println(msg)
	}
}
