// Copyright (c) 2023 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata_test

import (
	"errors"
	"fmt"
	"testing/fstest"
	"time"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/provider/env"
)

func ExampleLoad() {
	type Config struct {
		_ struct{} `strata:"prefix=APP,default_path=app.toml"`

		Host    string
		Port    int
		Timeout time.Duration
	}

	files := fstest.MapFS{
		"app.toml": {Data: []byte("port = 9090\ntimeout = \"5s\"\n")},
	}
	config, err := strata.Load[Config](
		strata.WithDefault(Config{Host: "localhost", Port: 8080, Timeout: time.Second}),
		strata.WithEnvironment(env.FromMap(map[string]string{"APP_HOST": "example.com"})),
		strata.WithFS(files),
	)
	if err != nil {
		// Handle error here.
		panic(err)
	}
	fmt.Printf("%s:%d %s\n", config.Host, config.Port, config.Timeout)
	// Output: example.com:9090 5s
}

func ExampleLoader_Load() {
	loader, err := strata.New[Mandatory](
		strata.WithEnvironment(env.Env{}),
		strata.WithFS(fstest.MapFS{}),
	)
	if err != nil {
		// Handle error here.
		panic(err)
	}

	if _, err := loader.Load(); errors.Is(err, strata.ErrUnresolvablePath) {
		fmt.Println(err)
	}
	// Output: config file 'cfg.toml' does not exist
}

func ExampleLoader_Explain() {
	loader, err := strata.New[Priority](
		strata.WithDefault(Priority{ID: 1}),
		strata.WithEnvironment(env.FromMap(map[string]string{"PRIORITY_ID": "20"})),
		strata.WithFS(fstest.MapFS{"priority.toml": {Data: []byte("id = 30")}}),
	)
	if err != nil {
		// Handle error here.
		panic(err)
	}

	fmt.Print(loader.Explain())
	// Output:
	// id has value[20] that is loaded by loader[env:PRIORITY_ID].
	// Here are other value(loader)s:
	//   - 30(file:priority.toml)
	//   - 1(default)
}
