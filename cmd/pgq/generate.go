package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgq-go/pgq/internal/cli"
	"github.com/pgq-go/pgq/internal/modelgen"
)

var (
	generateInput   string
	generateOutput  string
	generatePackage string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate model metadata from Go struct definitions",
	Long: `Generate model metadata from Go struct definitions.

Parses the input file, finds the exported struct types, and writes a
companion file containing table constants, column handle registries and the
ModelMeta/Fields methods required by the query API.

Field mapping:
  string      TextColumn (adds Like)
  *T          NullColumn[T] (adds Null, NotNull)
  []T         ArrayColumn[T] (adds Empty, Contains)
  anything    TypedColumn[T]

A ` + "`pgq:\"name\"`" + ` tag overrides the derived column name;
` + "`pgq:\"-\"`" + ` skips the field.`,
	Example: `  # Generate companion metadata for models.go
  pgq generate --input models.go

  # Explicit output path and package
  pgq generate --input models.go --output models_pgq.go --package store`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := resolveString(generateInput, cfg.Generate.Input)
		if input == "" {
			return cli.ConfigError("generate requires --input or generate.input in pgq.yaml", nil)
		}

		src, err := os.ReadFile(input)
		if err != nil {
			return cli.GeneralError("reading input file", err)
		}

		models, err := modelgen.Parse(input, src)
		if err != nil {
			return cli.GenerateError("parsing models", err)
		}

		pkg := resolveString(generatePackage, cfg.Generate.Package, packageOf(src))
		out, err := modelgen.Generate(pkg, models)
		if err != nil {
			return cli.GenerateError("generating model metadata", err)
		}

		output := resolveString(generateOutput, cfg.Generate.Output, defaultOutput(input))
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return cli.GeneralError("writing output file", err)
		}

		if !quiet {
			names := make([]string, len(models))
			for i, m := range models {
				names[i] = m.Name
			}
			fmt.Printf("Generated %s from %s (%s)\n", output, input, strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateInput, "input", "", "Go file containing model struct definitions")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "output file (default: <input>_pgq.go)")
	generateCmd.Flags().StringVar(&generatePackage, "package", "", "package name for generated code (default: input file's package)")
}

// defaultOutput derives the companion filename: models.go -> models_pgq.go.
func defaultOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_pgq.go"
}

// packageOf extracts the package name from Go source without a full parse.
func packageOf(src []byte) string {
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(line, "package "); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}
