package dicts

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/lex/pkg/app"
	"tableflip.dev/lex/pkg/printers"
)

type Dicts struct {
	Service *app.Service
}

func (n *Dicts) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list dictionaries, no service")
	}

	stores, err := n.Service.Stores(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.TitleWithCount("Dictionaries", len(stores))
	pp.Stores(stores...)
	return nil
}
