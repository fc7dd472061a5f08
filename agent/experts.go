package agent

import (
	"context"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator creates the expert the user talks to. board is the rendered
// portfolio at the start of the session.
func newFacilitator(model, board string, experts ...*Expert) *Expert {
	e := &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.
			The user collects weapon cases of a video game as an investment, and tracks what they
			paid and what the cases are worth today.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They keep context of your previous questions.

			Devise a plan of questions to ask to each expert and come up with the best response.
			Answer in markdown, amounts in the user's currency.

			This is the user's portfolio when the session started:

			` + board),
		},
	}
	if len(experts) > 0 {
		e.Config.Tools = []*genai.Tool{{FunctionDeclarations: NewDeclaration(experts)}}
		e.Library = NewLibrary(experts)
	}
	return e
}

// NewMarketAnalyst returns an expert grounded on Google Search, for news and
// market trends about the cases.
func NewMarketAnalyst(model string) *Expert {
	return &Expert{
		Name: "MarketAnalyst",
		Description: `This is an expert of the case market. It knows the latest news about
		the cases, their drop pool changes and their price trends.
		Ask the MarketAnalyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert of the weapon case market. You search for the latest prices,
			drop pool changes and news, and you relate them to the user's request.
			Leverage Google Search to ground your assertions.
			`),
		},
	}
}

// NewCurator returns an expert reading the live portfolio: board returns the
// rendered board with every ledger, catalog the rendered catalog.
func NewCurator(model string, board, catalog func() string) *Expert {
	lib := []Function{
		textFunc("Board", `Board returns the user's portfolio: totals, one summary per case with
		quantity, purchase price, current price, profit or loss and ROI, and the ledger of every case.`, board),
		textFunc("Catalog", `Catalog lists every known case with its release date, drop status, latest
		price and whether the user holds it.`, catalog),
	}
	return &Expert{
		Name: "Curator",
		Description: `This is the Curator. It reads the user's portfolio and the case catalog.
		Ask the Curator for any figure about the user's holdings.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the curator of the user's case collection.
			Use the available tools to get the latest figures, they may have changed since the
			session started.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// textFunc declares a function without parameters returning a markdown text.
func textFunc(name, description string, text func() string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return &genai.FunctionResponse{
				ID:       id,
				Name:     name,
				Response: map[string]any{"output": text()},
			}
		},
	}
}
