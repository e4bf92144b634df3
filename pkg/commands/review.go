package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lex/pkg/runner/review"
)

func addReview(topLevel *cobra.Command) {
	all := false

	cmd := &cobra.Command{
		Use:     "review",
		Aliases: []string{"due"},
		Short:   "list the cards due for review",
		Example: `
lex review
lex review --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := review.Review{
				All:     all,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List the whole deck, not just due cards.")

	topLevel.AddCommand(cmd)
}
