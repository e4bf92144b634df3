package lookup

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/lex/pkg/app"
	"tableflip.dev/lex/pkg/printers"
)

type Lookup struct {
	Query   string
	Full    bool
	Service *app.Service
}

func (n *Lookup) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not look up, no service")
	}

	results, err := n.Service.Lookup(ctx, n.Query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no matches for %q", n.Query)
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	pp := printers.PrettyPrint{}
	fmt.Println("")
	for _, name := range names {
		matches := results[name]
		pp.TitleWithCount(name, len(matches))
		if n.Full && len(matches) == 1 {
			pp.Definition(matches[0])
			pp.NewLine()
			continue
		}
		pp.Matches(matches...)
	}
	return nil
}
