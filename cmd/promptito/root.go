package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"

	"github.com/spf13/cobra"
)

var (
	locale    string
	statePath string
)

var rootCmd = &cobra.Command{
	Use:   "promptito",
	Short: "Compose and check structured prompts from the terminal",
	Long: `promptito works on builder state JSON files, the same format the web
builder saves.

Commands:
  promptito compose   Print the composed prompt
  promptito validate  Check that every required segment has content
  promptito catalog   Browse the block palette
  promptito draft     Keep named drafts in a local SQLite file`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&locale, "lang", i18n.DefaultLocale, "Locale for labels and catalog text")
	rootCmd.PersistentFlags().StringVarP(&statePath, "file", "f", "", "Builder state JSON, stdin when empty or -")
	rootCmd.AddCommand(composeCmd, validateCmd, catalogCmd, draftCmd)
}

func translator() (i18n.Translator, error) {
	bundle, err := i18n.Default()
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	return bundle.For(bundle.Match(locale)), nil
}

// readState loads the state at path, "-" or "" meaning stdin.
func readState(path string, tr i18n.Translator) (state.BuilderState, error) {
	var raw []byte
	var err error
	if path == "" || path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return state.BuilderState{}, fmt.Errorf("read state: %w", err)
	}
	st, ok := state.Decode(raw, tr)
	if !ok {
		return state.BuilderState{}, fmt.Errorf("%s is not a builder state", displayPath(path))
	}
	return st, nil
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
