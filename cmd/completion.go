package cmd

import (
	"flag"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/docs"
	"github.com/etnz/watchlist/export"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of wls, built from the
// global flags and the flags of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, e := range Commands {
		fs := flag.NewFlagSet(e.Cmd.Name(), flag.ContinueOnError)
		e.Cmd.SetFlags(fs)
		root.Sub[e.Cmd.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	}
	root.Sub["topic"].Args = predict.Set(append(docs.Topics(), docs.All))
	return root
}

var periods = func() predict.Set {
	var s predict.Set
	for _, p := range watchlist.ChartPeriods() {
		s = append(s, string(p))
	}
	return s
}()

// flagPredictors predicts the values of the flags of fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "watchlists":
			flags[f.Name] = predict.Files("*.yaml")
		case "o", "log-file":
			flags[f.Name] = predict.Files("*")
		case "dir":
			flags[f.Name] = predict.Dirs("*")
		case "format":
			flags[f.Name] = predict.Set(append([]string{"md"}, export.Formats()...))
		case "period":
			flags[f.Name] = periods
		case "log-format":
			flags[f.Name] = predict.Set{"text", "json"}
		default:
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[f.Name] = predict.Nothing
			} else {
				flags[f.Name] = predict.Something
			}
		}
	})
	return flags
}
