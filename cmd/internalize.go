package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conneroisu/basset/internal/archive"
	"github.com/conneroisu/basset/internal/engine"
)

var internalizeCmd = &cobra.Command{
	Use:     "internalize [identifiers...]",
	Aliases: []string{"i"},
	Short:   "Internalize one or more assets into local storage",
	Long: `Internalize assets into the configured storage disk and print the
resulting inclusion markup (or the resolved URL for plain files).

The asset kind is detected from the identifier unless --kind is given:
stylesheets by .css extension, scripts by .js, archives by .zip/.tar.gz/.tgz,
directories when the identifier is an existing local directory.

Examples:
  basset internalize https://cdn.example.com/lib.js
  basset internalize --kind style //fonts.example.com/icons.css
  basset internalize --kind archive https://cdn.example.com/theme.zip --output vendor/theme
  basset internalize ./resources/fonts --kind dir`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInternalize,
}

var (
	internalizeKind   string
	internalizeOutput string
	internalizeAttrs  []string
)

func init() {
	rootCmd.AddCommand(internalizeCmd)

	internalizeCmd.Flags().
		VarP(newEnumValue(&internalizeKind, "auto", "auto", "file", "style", "script", "archive", "dir"),
			"kind", "k", "Asset kind (auto|file|style|script|archive|dir)")
	internalizeCmd.Flags().
		StringVarP(&internalizeOutput, "output", "o", "", "Override the storage path derived from the identifier")
	internalizeCmd.Flags().
		StringArrayVarP(&internalizeAttrs, "attr", "a", nil, "Tag attribute as key=value (repeatable; value-less keys render bare)")
}

func runInternalize(cmd *cobra.Command, args []string) error {
	ctx, err := newRunContext()
	if err != nil {
		return err
	}

	attrs := parseAttributes(internalizeAttrs)

	for _, identifier := range args {
		kind := internalizeKind
		if kind == "auto" {
			kind = detectKind(ctx.fs, identifier)
		}

		var res engine.Result
		switch kind {
		case "style":
			res = ctx.engine.StyleSheet(identifier, attrs)
		case "script":
			res = ctx.engine.Script(identifier, attrs)
		case "archive":
			res = ctx.engine.Archive(identifier, internalizeOutput)
		case "dir":
			res = ctx.engine.Directory(identifier, internalizeOutput)
		case "file":
			res = ctx.engine.File(identifier, internalizeOutput)
		default:
			return fmt.Errorf("unknown asset kind %q", kind)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", res.Status, identifier)
		if res.Output != "" {
			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		}
	}

	return ctx.engine.Flush()
}

// detectKind inspects the identifier: extensions pick stylesheets, scripts
// and archives; an existing local directory picks directory.
func detectKind(fs afero.Fs, identifier string) string {
	lower := strings.ToLower(identifier)
	switch {
	case archive.Supported(lower):
		return "archive"
	case strings.HasSuffix(lower, ".css"):
		return "style"
	case strings.HasSuffix(lower, ".js"), strings.HasSuffix(lower, ".mjs"):
		return "script"
	}

	if isDir, err := afero.DirExists(fs, identifier); err == nil && isDir {
		return "dir"
	}

	return "file"
}

func parseAttributes(pairs []string) engine.Attributes {
	if len(pairs) == 0 {
		return nil
	}

	attrs := make(engine.Attributes, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			attrs[key] = ""
			continue
		}
		attrs[key] = value
	}

	return attrs
}
