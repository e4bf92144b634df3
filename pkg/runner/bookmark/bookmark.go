package bookmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/lex/pkg/app"
	"tableflip.dev/lex/pkg/printers"
)

type Bookmark struct {
	Word       string
	Definition string
	Remove     bool
	Service    *app.Service
}

func (n *Bookmark) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not bookmark, no service")
	}

	if n.Remove {
		if err := n.Service.Remove(ctx, n.Word); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", n.Word)
		return nil
	}

	c, err := n.Service.Bookmark(ctx, n.Word, n.Definition)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Bookmarked")
	pp.Cards(time.Now(), c)
	return nil
}
