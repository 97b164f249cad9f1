package cmd

import (
	"flag"

	"github.com/etnz/fantaleague/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors predicts the values of flags by name.
var flagPredictors = map[string]complete.Predictor{
	"store":    predict.Set{"dir", "sqlite", "s3", "memory"},
	"data":     predict.Files("*"),
	"o":        predict.Files("*.json"),
	"type":     predict.Set{"cup", "supercup", "other", "acquisto", "stipendi"},
	"sign":     predict.Set{"+", "-"},
	"years":    predict.Set{"1", "2", "3", "4"},
	"division": predict.Set{"A", "B"},
}

// argPredictors predicts the positional arguments of commands.
var argPredictors = map[string]complete.Predictor{
	"import":         predict.Files("*.json"),
	"sandbox-import": predict.Files("*.json"),
	"listone":        predict.Set{"A", "B"},
	"topic":          topics(),
}

// topics predicts the handbook topics.
func topics() complete.Predictor {
	all, err := docs.GetAllTopics()
	if err != nil {
		return predict.Nothing
	}
	return predict.Set(append(all, docs.All))
}

// flagsOf returns the predictors of every flag of fs.
func flagsOf(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the command line: the global
// flags of fs and every subcommand with its flags.
func Completion(fs *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{"help": {}, "flags": {}},
		Flags: flagsOf(fs),
	}
	for _, c := range Commands {
		sub := flag.NewFlagSet(c.Command.Name(), flag.ContinueOnError)
		c.Command.SetFlags(sub)
		root.Sub[c.Command.Name()] = &complete.Command{
			Flags: flagsOf(sub),
			Args:  argPredictors[c.Command.Name()],
		}
	}
	return root
}
