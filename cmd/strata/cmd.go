// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/strata/internal/credential"
	"github.com/nil-go/strata/provider/env"
	"github.com/nil-go/strata/provider/file"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "strata",
		Short: "strata diagnoses the sources of a layered configuration",
		Long: `strata diagnoses the sources of a layered configuration.

Configuration is loaded from environment variables, a config file and the
default value, in order of precedence. The subcommands show what each of
the first two sources provides. Sensitive values are blurred.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDecodeCmd(), newEnvCmd())

	return root
}

func newDecodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "decode <path>",
		Short: "Decode a config file and print its key/value tree",
		Long: `Decode a config file and print its key/value tree.

The format is inferred from the extension: .toml (or none), .json, .yaml,
.yml, .ini and .json5.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := file.New(args[0]).Load()
			if err != nil {
				return err //nolint:wrapcheck
			}

			return write(cmd.OutOrStdout(), blur(values, ""), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml or json")

	return cmd
}

func newEnvCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "env [dotenv files]",
		Short: "Print environment variables from the process or dotenv files",
		Long: `Print environment variables from the process, or from the given dotenv
files where later files override earlier ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var environment env.Env
			if len(args) == 0 {
				environment = env.New(env.WithPrefix(prefix))
			} else {
				var err error
				if environment, err = env.Read(args...); err != nil {
					return err //nolint:wrapcheck
				}
			}

			out := cmd.OutOrStdout()
			for _, name := range environment.Names() {
				if !strings.HasPrefix(name, prefix) {
					continue
				}
				value, _ := environment.Lookup(name)
				if _, err := fmt.Fprintf(out, "%s=%s\n", name, credential.Blur(name, value)); err != nil {
					return err //nolint:wrapcheck
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Only print variables with the prefix")

	return cmd
}

// blur replaces the sensitive values of the tree with their blurred form.
func blur(values map[string]any, path string) map[string]any {
	blurred := make(map[string]any, len(values))
	for key, value := range values {
		switch v := value.(type) {
		case map[string]any:
			blurred[key] = blur(v, path+key+".")
		default:
			if b := credential.Blur(path+key, value); b != fmt.Sprint(value) {
				value = b
			}
			blurred[key] = value
		}
	}

	return blurred
}

func write(out io.Writer, values map[string]any, output string) error {
	switch output {
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2) //nolint:mnd
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return encoder.Close() //nolint:wrapcheck
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w '%s'", errUnsupportedOutput, output)
	}
}

var errUnsupportedOutput = errors.New("unsupported output format")
