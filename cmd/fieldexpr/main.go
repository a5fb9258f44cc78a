// Package main is a little command-line front end for expression
// evaluation, tree resolution, and catalog rendering.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/fieldexpr/fieldexpr/core"
	"github.com/fieldexpr/fieldexpr/evaluators"
	"github.com/fieldexpr/fieldexpr/lang"
	"github.com/fieldexpr/fieldexpr/tools"

	"github.com/jsccast/yaml"
)

func main() {

	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}

	evals := evaluators.Standard()

	switch os.Args[1] {
	case "yamltojson":
		pretty := false

		switch len(os.Args) {
		case 2:
		case 3:
			switch os.Args[2] {
			case "-p":
				pretty = true
			default:
				panic(fmt.Sprintf("unsupported args: %v", os.Args[1:]))
			}
		default:
			panic(fmt.Sprintf("unsupported args: %v", os.Args[1:]))
		}

		bs, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		var x interface{}
		if err = yaml.Unmarshal(bs, &x); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if x, err = core.Canonicalize(x); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if pretty {
			bs, err = json.MarshalIndent(&x, "", "  ")
		} else {
			bs, err = json.Marshal(&x)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s\n", bs)

	case "jsontoyaml":

		bs, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		var x interface{}
		if err = json.Unmarshal(bs, &x); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if bs, err = yaml.Marshal(&x); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if _, err = os.Stdout.Write(bs); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "eval":
		fs := flag.NewFlagSet("eval", flag.ExitOnError)
		evalName := fs.String("i", core.DefaultEvaluatorName, "evaluator name")
		scopeJS := fs.String("s", "{}", "scope (as JSON)")
		if err := fs.Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if fs.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "error: eval wants exactly one expression\n")
			os.Exit(1)
		}

		var scope core.Scope
		if err := json.Unmarshal([]byte(*scopeJS), &scope); err != nil {
			fmt.Fprintf(os.Stderr, "error: bad scope: %v\n", err)
			os.Exit(1)
		}

		ev, err := core.FindEvaluator(evals, *evalName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", *evalName, err)
			os.Exit(1)
		}

		o := core.Evaluate(context.Background(), ev, fs.Arg(0), scope)
		if !o.OK {
			fmt.Fprintf(os.Stderr, "error: %v\n", o.Error)
			os.Exit(1)
		}

		bs, err := json.Marshal(&o.Value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", bs)

	case "resolve":
		fs := flag.NewFlagSet("resolve", flag.ExitOnError)
		evalName := fs.String("i", core.DefaultEvaluatorName, "evaluator name")
		scopeJS := fs.String("s", "{}", "scope (as JSON)")
		if err := fs.Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		var scope core.Scope
		if err := json.Unmarshal([]byte(*scopeJS), &scope); err != nil {
			fmt.Fprintf(os.Stderr, "error: bad scope: %v\n", err)
			os.Exit(1)
		}

		ev, err := core.FindEvaluator(evals, *evalName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", *evalName, err)
			os.Exit(1)
		}

		bs, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		var x interface{}
		if err = json.Unmarshal(bs, &x); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		y := core.ResolveDynamic(context.Background(), x, ev, scope)

		if bs, err = json.MarshalIndent(&y, "", "  "); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", bs)

	case "catalog":
		fs := flag.NewFlagSet("catalog", flag.ExitOnError)
		title := fs.String("t", "Components", "page title")
		fragment := fs.Bool("f", false, "emit a fragment instead of a page")
		if err := fs.Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		bs, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		cfg, err := tools.ParseConfig(bs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if *fragment {
			err = tools.RenderConfigHTML(cfg, os.Stdout)
		} else {
			err = tools.RenderConfigPage(*title, cfg, os.Stdout, nil)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "funcs":
		prefix := ""
		if 2 < len(os.Args) {
			prefix = os.Args[2]
		}
		for _, c := range lang.Completions(prefix) {
			fmt.Printf("%s\t%s\n", c.Label, c.Detail)
		}

	default:
		fmt.Printf("Unknown subcommand \"%s\"\n", os.Args[1])
		Usage()
		os.Exit(1)
	}
}

func Usage() {
	fmt.Print(`fieldexpr SUBCOMMAND

Subcommands:

  yamltojson [-p]          YAML on stdin to JSON on stdout (-p: pretty)
  jsontoyaml               JSON on stdin to YAML on stdout
  eval [-i EVAL] [-s SCOPE] EXPR
                           Evaluate EXPR against SCOPE (a JSON object)
  resolve [-i EVAL] [-s SCOPE]
                           Resolve wrapped values in the JSON tree on stdin
  catalog [-t TITLE] [-f]  Render an HTML catalog for the YAML config on stdin
  funcs [PREFIX]           List known expression functions

`)
}
