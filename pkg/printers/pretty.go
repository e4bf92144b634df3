package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"tableflip.dev/lex/pkg/dict"
	"tableflip.dev/lex/pkg/leitner"
)

type PrettyPrint struct {
	// MaxWidth caps the definition column. Zero means 80.
	MaxWidth uint
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Matches prints dictionary entries as a word/definition table.
func (pp *PrettyPrint) Matches(entries ...dict.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	w := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = pp.maxWidth()
	tbl.Wrap = true

	for _, e := range entries {
		tbl.AddRow(w.Sprint(e.Word), firstLine(e.Definition))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Definition prints a single entry in full.
func (pp *PrettyPrint) Definition(e dict.Entry) {
	w := color.New(color.Bold)
	_, _ = w.Println(e.Word)
	fmt.Println(e.Definition)
}

// Cards prints leitner cards with their box and next review date.
func (pp *PrettyPrint) Cards(now time.Time, cards ...*leitner.Card) {
	if len(cards) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	w := color.New(color.Bold)
	y := color.New(color.FgHiYellow)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = pp.maxWidth()
	tbl.Wrap = true

	for _, c := range cards {
		due := leitner.RelativeDue(c.Due, now)
		if due == "" && c.Due.After(now) {
			due = c.Due.Format("2006-01-02")
		}
		tbl.AddRow(w.Sprint(c.Word), y.Sprint(leitner.BoxSymbol(c.Box)), f.Sprint(due), firstLine(c.Definition))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Stores prints the loaded dictionaries with their entry counts.
func (pp *PrettyPrint) Stores(stores ...*dict.Store) {
	if len(stores) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	w := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "

	for _, st := range stores {
		tbl.AddRow(w.Sprint(st.Name()), f.Sprintf("%d entries", st.Len()))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) maxWidth() uint {
	if pp.MaxWidth == 0 {
		return 80
	}
	return pp.MaxWidth
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
