package cmd

import (
	"slices"

	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/config"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of cfo. Catalog names are predicted
// for add, held names (from the state file) for the other commands.
func Completion() *complete.Command {
	catalog := predict.Set(casefolio.DefaultCatalog().CaseNames)
	held := complete.PredictFunc(func(prefix string) []string {
		return predict.Set(heldNames()).Predict(prefix)
	})
	fields := predict.Set{string(casefolio.FieldQuantity), string(casefolio.FieldPurchasePrice)}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"boot":   predict.Files("*"),
			"raw":    predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"board": {Flags: map[string]complete.Predictor{
				"details": predict.Nothing,
				"html":    predict.Files("*.html"),
			}},
			"ledger":  {Args: held},
			"catalog": {},
			"ticker":  {Flags: map[string]complete.Predictor{"refresh": predict.Set{"@every 1m", "@every 5m", "@hourly"}}},
			"add":     {Args: catalog},
			"buy":     {Args: held},
			"sell":    {Args: held},
			"edit":    {Args: caseThen(held, fields)},
			"remove":  {Args: held, Flags: map[string]complete.Predictor{"y": predict.Nothing}},
			"reorder": {Args: held},
			"prices":  {},
			"refresh": {},
			"apikey":  {},
			"assist":  {},
			"topic":   {Args: predict.Set{"board", "config", "ticker", "transactions"}},
		},
	}
}

// heldNames reads the case names from the state file, the catalog when it
// cannot be read.
func heldNames() []string {
	cfg, err := config.Load(*configFile)
	if err == nil {
		if s, err := casefolio.DecodeState(cfg.StateFile); err == nil {
			return casefolio.Names(s.Investments)
		}
	}
	return slices.Clone(casefolio.DefaultCatalog().CaseNames)
}

// caseThen predicts case names and the next argument.
func caseThen(names complete.Predictor, next predict.Set) complete.PredictFunc {
	return func(prefix string) []string {
		return slices.Concat(names.Predict(prefix), next.Predict(prefix))
	}
}
