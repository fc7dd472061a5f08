package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/casefolio/agent"
	"github.com/etnz/casefolio/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the AI assistant about the portfolio" }
func (*assistCmd) Usage() string {
	return `cfo assist [question]

  Starts an interactive session with the AI assistant. The question, if any,
  is asked first. Needs GEMINI_API_KEY.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	board := func() string {
		return renderer.RenderBoard(a.ctrl.Board(), renderer.BoardRenderOptions{Details: true})
	}
	catalog := func() string {
		return renderer.RenderCatalog(renderer.NewCatalog(a.ctrl.State(), a.ctrl.Currency()))
	}
	model := a.cfg.Assist.Model
	ag := agent.New(os.Stdout, os.Stdin, model, board(),
		agent.NewMarketAnalyst(model),
		agent.NewCurator(model, board, catalog),
	)
	for _, e := range append(ag.Experts, ag.Facilitator) {
		e.Logger = a.log
	}
	if !*rawOutput {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120)); err == nil {
			ag.Render = func(md string) string {
				out, err := r.Render(md)
				if err != nil {
					return md
				}
				return out
			}
		}
	}

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := ag.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
