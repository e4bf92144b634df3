package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/lex/pkg/app"
	"tableflip.dev/lex/pkg/commands/options"
	"tableflip.dev/lex/pkg/runner/tea"
	"tableflip.dev/lex/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "lex",
		Short: base.Wrap80("Dictionary lookup and spaced repetition on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare `lex` opens the interactive UI.
			svc, err := newService()
			if err != nil {
				return err
			}
			return teaui.Run(svc)
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addLookup(topLevel)
	addBookmark(topLevel)
	addReview(topLevel)
	addDicts(topLevel)
	addVersion(topLevel)
}

func newService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p, Config: cfg}, nil
}
