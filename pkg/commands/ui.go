package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lex/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
lex ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			return teaui.Run(svc)
		},
	}

	topLevel.AddCommand(cmd)
}
