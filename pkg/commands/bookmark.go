package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/lex/pkg/runner/bookmark"
)

func addBookmark(topLevel *cobra.Command) {
	definition := ""
	remove := false

	cmd := &cobra.Command{
		Use:     "bookmark <word>",
		Aliases: []string{"mark", "add"},
		Short:   "add a word to the review deck",
		Long: "Add a word to the Leitner review deck. Without --definition the\n" +
			"dictionaries are consulted for an exact match.",
		Example: `
lex bookmark serendipity
lex bookmark voile --definition "a thin translucent fabric"
lex bookmark serendipity --remove
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a word to bookmark")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := bookmark.Bookmark{
				Word:       strings.Join(args, " "),
				Definition: definition,
				Remove:     remove,
				Service:    svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&definition, "definition", "d", "", "Definition to store with the card.")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the card instead of adding it.")

	topLevel.AddCommand(cmd)
}
