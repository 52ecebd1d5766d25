package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"promptito-be/pkg/builder/compose"
	"promptito-be/pkg/builder/segment"

	"github.com/spf13/cobra"
)

var composeOutputPath string

var composeCmd = &cobra.Command{
	Use:   "compose [state.json]",
	Short: "Print the composed prompt of a builder state",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := translator()
		if err != nil {
			return err
		}
		st, err := readState(argOr(args, statePath), tr)
		if err != nil {
			return err
		}

		out := compose.Compose(st, tr)
		if composeOutputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		if err := os.WriteFile(composeOutputPath, []byte(out+"\n"), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [state.json]",
	Short: "Check that every required segment has content",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := translator()
		if err != nil {
			return err
		}
		st, err := readState(argOr(args, statePath), tr)
		if err != nil {
			return err
		}

		readiness := compose.Check(st)
		if readiness.Ready() {
			fmt.Fprintln(cmd.OutOrStdout(), "ready")
			return nil
		}
		labels := make([]string, len(readiness.Missing))
		for i, id := range readiness.Missing {
			labels[i] = segment.Label(id, tr)
		}
		if len(labels) == 0 {
			return errors.New("prompt has no required segments")
		}
		return fmt.Errorf("missing content in: %s", strings.Join(labels, ", "))
	},
}

func init() {
	composeCmd.Flags().StringVarP(&composeOutputPath, "output", "o", "", "Write the prompt to a file instead of stdout")
}

func argOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}
