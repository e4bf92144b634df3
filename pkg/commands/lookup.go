package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/lex/pkg/runner/lookup"
)

func addLookup(topLevel *cobra.Command) {
	full := false

	cmd := &cobra.Command{
		Use:     "lookup <word>",
		Aliases: []string{"find", "search"},
		Short:   "search every dictionary for a word",
		Example: `
lex lookup serendipity
lex lookup seren
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a word to look up")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := lookup.Lookup{
				Query:   strings.Join(args, " "),
				Full:    full,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print the complete definition for a single match.")

	topLevel.AddCommand(cmd)
}
