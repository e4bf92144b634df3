package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/lex/pkg/app"
	"tableflip.dev/lex/pkg/printers"
)

type Review struct {
	All     bool
	Service *app.Service
}

func (n *Review) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not review, no service")
	}

	now := time.Now()
	pp := printers.PrettyPrint{}
	fmt.Println("")

	if n.All {
		deck, err := n.Service.Deck(ctx)
		if err != nil {
			return err
		}
		pp.TitleWithCount("Deck", deck.Len())
		pp.Cards(now, deck.Cards()...)
		return nil
	}

	due, err := n.Service.DueCards(ctx, now)
	if err != nil {
		return err
	}
	pp.TitleWithCount("Due", len(due))
	pp.Cards(now, due...)
	return nil
}
