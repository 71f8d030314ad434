// Command lvm parses, typechecks, and interprets an L source file under a
// gas budget, printing the final stack or the first error encountered.
// Batch execution only: L programs are gas-bounded and have no incremental
// definitions to accumulate, so there is no REPL.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/lstacklang/lvm/pkg/gas"
	"github.com/lstacklang/lvm/pkg/interp"
	"github.com/lstacklang/lvm/pkg/lir"
	"github.com/lstacklang/lvm/pkg/parser"
	"github.com/lstacklang/lvm/pkg/stack"
	"github.com/lstacklang/lvm/pkg/typecheck"
)

var (
	flagGas     = flag.Int64("gas", 100000, "gas budget in whole units (1 gas = 1000 milligas)")
	flagInitial = flag.String("stack", "", "initial stack, top-first, comma-separated type:value pairs (e.g. nat:5,int:-3)")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: lvm [-gas N] [-stack spec] <source-file>")
		os.Exit(2)
	}

	if err := run(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "lvm: %v\n", err)
		os.Exit(1)
	}
}

func run(filename string) error {
	glog.V(1).Infof("parsing %s", filename)
	ast, err := parser.ParseFile(filename)
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	initialTypes, initialValues, err := parseInitialStack(*flagInitial)
	if err != nil {
		return errors.Wrap(err, "initial stack")
	}

	if *flagGas < 0 {
		return errors.New("-gas must be non-negative")
	}
	g := gas.New(uint64(*flagGas))

	ts := stack.New[lir.Type](initialTypes...)
	glog.V(1).Infof("typechecking with initial stack %v and budget %s", initialTypes, g)
	typed, err := typecheck.Typecheck(ast, g, ts)
	if err != nil {
		return errors.Wrap(err, "typecheck")
	}
	glog.V(1).Infof("typecheck succeeded, resulting type stack %v, %s remaining", ts.AsSlice(), g)

	vs := stack.New[interp.Value](initialValues...)
	if err := interp.Interpret(typed, g, vs); err != nil {
		return errors.Wrap(err, "interpret")
	}

	fmt.Printf("result: %s\n", formatValueStack(vs))
	fmt.Printf("gas remaining: %s\n", g)
	return nil
}

// parseInitialStack parses -stack's "type:value,type:value" syntax, top
// element first, into parallel lir.Type and interp.Value slices.
func parseInitialStack(spec string) ([]lir.Type, []interp.Value, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil, nil
	}
	parts := strings.Split(spec, ",")
	types := make([]lir.Type, 0, len(parts))
	values := make([]interp.Value, 0, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) != 2 {
			return nil, nil, errors.Errorf("malformed stack entry %q, want type:value", part)
		}
		t, ok := lir.ParseType(kv[0])
		if !ok {
			return nil, nil, errors.Errorf("unrecognized type %q", kv[0])
		}
		val, err := parseInitialValue(t, kv[1])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "stack entry %q", part)
		}
		types = append(types, t)
		values = append(values, val)
	}
	return types, values, nil
}

func parseInitialValue(t lir.Type, raw string) (interp.Value, error) {
	switch t {
	case lir.Nat:
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok || n.Sign() < 0 {
			return nil, errors.Errorf("%q is not a valid nat", raw)
		}
		return interp.Nat{N: n}, nil
	case lir.Int:
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, errors.Errorf("%q is not a valid int", raw)
		}
		return interp.Int{N: n}, nil
	case lir.Mutez:
		n, err := strconv.ParseUint(raw, 10, 63)
		if err != nil {
			return nil, errors.Wrapf(err, "%q is not a valid mutez", raw)
		}
		return interp.Mutez{N: n}, nil
	case lir.Bool:
		switch raw {
		case "True":
			return interp.Bool(true), nil
		case "False":
			return interp.Bool(false), nil
		default:
			return nil, errors.Errorf("%q is not True or False", raw)
		}
	default:
		return nil, errors.Errorf("unhandled type %v", t)
	}
}

func formatValueStack(vs *stack.Stack[interp.Value]) string {
	items := vs.AsSlice()
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
