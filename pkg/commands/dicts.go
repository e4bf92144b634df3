package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lex/pkg/runner/dicts"
)

func addDicts(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "dicts",
		Aliases: []string{"dictionaries"},
		Short:   "list the loaded dictionaries",
		Example: `
lex dicts
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := dicts.Dicts{Service: svc}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
