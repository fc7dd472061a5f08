package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/renderer"
	"github.com/google/subcommands"
)

// parseQuantity parses a whole number of cases.
func parseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q is not a whole number", casefolio.ErrInvalidQuantity, s)
	}
	return q, nil
}

// parsePrice parses a price, a leading currency symbol is accepted.
func parsePrice(s string) (casefolio.Price, error) {
	p, err := casefolio.ParsePrice(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return casefolio.Price{}, fmt.Errorf("%w: %q is not a price", casefolio.ErrInvalidPrice, s)
	}
	return p, nil
}

// caseQuantityPrice parses the "<case> <quantity> <price>" arguments.
func caseQuantityPrice(f *flag.FlagSet) (string, int, casefolio.Price, error) {
	if f.NArg() != 3 {
		return "", 0, casefolio.Price{}, fmt.Errorf("%w: want <case> <quantity> <price>, got %d arguments", errUsage, f.NArg())
	}
	q, err := parseQuantity(f.Arg(1))
	if err != nil {
		return "", 0, casefolio.Price{}, err
	}
	p, err := parsePrice(f.Arg(2))
	if err != nil {
		return "", 0, casefolio.Price{}, err
	}
	return f.Arg(0), q, p, nil
}

// printBoard prints the board after a change.
func printBoard(a *app) {
	printMarkdown(renderer.RenderBoard(a.ctrl.Board(), renderer.BoardRenderOptions{}))
}

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new case to the portfolio" }
func (*addCmd) Usage() string {
	return `cfo add <case> <quantity> <price>

  Adds a case bought quantity times at price each. A case can be added once,
  use buy to record more purchases.
`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, q, p, err := caseQuantityPrice(f)
	if err != nil {
		return fail(err)
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.Add(ctx, name, q, p); err != nil {
		return fail(err)
	}
	printBoard(a)
	return subcommands.ExitSuccess
}

// txCmd records a buy or a sell.
type txCmd struct {
	typ casefolio.TxType
}

func (c *txCmd) Name() string { return string(c.typ) }
func (c *txCmd) Synopsis() string {
	if c.typ == casefolio.Sell {
		return "record a sale of a held case"
	}
	return "record a purchase of a held case"
}
func (c *txCmd) Usage() string {
	return fmt.Sprintf(`cfo %s <case> <quantity> <price>

  Records a %s of quantity cases at price each, dated today.
`, c.typ, c.typ)
}

func (*txCmd) SetFlags(f *flag.FlagSet) {}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, q, p, err := caseQuantityPrice(f)
	if err != nil {
		return fail(err)
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if c.typ == casefolio.Sell {
		err = a.ctrl.Sell(ctx, name, q, p)
	} else {
		err = a.ctrl.Buy(ctx, name, q, p)
	}
	if err != nil {
		return fail(err)
	}
	printBoard(a)
	return subcommands.ExitSuccess
}

type editCmd struct{}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "set the quantity or the purchase price of a case" }
func (*editCmd) Usage() string {
	return `cfo edit <case> quantity|purchase_price <value>

  Sets a field directly, without recording a transaction.
`
}

func (*editCmd) SetFlags(f *flag.FlagSet) {}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		return fail(fmt.Errorf("%w: want <case> <field> <value>", errUsage))
	}
	field := casefolio.Field(f.Arg(1))
	value, err := parsePrice(f.Arg(2))
	if err != nil {
		return fail(err)
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.Edit(ctx, f.Arg(0), field, value); err != nil {
		return fail(err)
	}
	printBoard(a)
	return subcommands.ExitSuccess
}

// stdin is read for confirmations.
var stdin io.Reader = os.Stdin

type removeCmd struct {
	yes bool
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a case from the portfolio" }
func (*removeCmd) Usage() string {
	return `cfo remove [-y] <case>

  Removes a case and its transactions, after confirmation.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("%w: remove needs a case name", errUsage))
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.ctrl.Remove(ctx, f.Arg(0), c.confirm); err != nil {
		return fail(err)
	}
	printBoard(a)
	return subcommands.ExitSuccess
}

func (c *removeCmd) confirm(name string) bool {
	if c.yes {
		return true
	}
	fmt.Fprintf(os.Stderr, "Remove %s and all its transactions? [y/N] ", name)
	answer, _ := bufio.NewReader(stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

type reorderCmd struct{}

func (*reorderCmd) Name() string     { return "reorder" }
func (*reorderCmd) Synopsis() string { return "move a case to another position" }
func (*reorderCmd) Usage() string {
	return `cfo reorder <case>|<from> <to>

  Moves a case, given by name or by position, to position to. Positions start
  at 0, the cases in between shift by one.
`
}

func (*reorderCmd) SetFlags(f *flag.FlagSet) {}

func (c *reorderCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return fail(fmt.Errorf("%w: want <case> <to>", errUsage))
	}
	to, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		return fail(fmt.Errorf("%w: position %q is not a number", errUsage, f.Arg(1)))
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if from, perr := strconv.Atoi(f.Arg(0)); perr == nil {
		err = a.ctrl.Reorder(ctx, from, to)
	} else {
		err = a.ctrl.MoveCase(ctx, f.Arg(0), to)
	}
	if err != nil {
		return fail(err)
	}
	printBoard(a)
	return subcommands.ExitSuccess
}
