package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/dhamidi/treeproc/config"
	"github.com/dhamidi/treeproc/treebank"
)

func newBank(cfg *config.Config) *treebank.Bank {
	return treebank.New(nil,
		treebank.WithParserOptions(cfg.ParserOptions()...),
		treebank.WithWorkers(cfg.Parser.Workers),
	)
}

// openInput opens the file named by the first argument, or stdin when there
// is none or it is "-".
func openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open trees: %w", err)
	}
	return f, args[0], nil
}

// loadBank reads the trees named by args into a new bank. Lines rejected in
// strict mode are reported on stderr; the rest are kept.
func loadBank(ctx context.Context, cfg *config.Config, args []string) (*treebank.Bank, error) {
	r, name, err := openInput(args)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return loadFrom(ctx, cfg, r, name)
}

func loadFrom(ctx context.Context, cfg *config.Config, r io.Reader, name string) (*treebank.Bank, error) {
	bank := newBank(cfg)
	_, err := bank.Load(ctx, r)

	var lineErr *treebank.LineError
	switch {
	case err == nil:
	case errors.As(err, &lineErr):
		fmt.Fprintf(os.Stderr, "%s: some trees were rejected:\n", name)
		printErrors(err)
	default:
		return nil, err
	}
	return bank, nil
}

// printErrors writes each error of a joined or list-valued error on its own
// line.
func printErrors(err error) {
	for _, e := range flatten(err) {
		fmt.Fprintln(os.Stderr, e)
	}
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []error
		for _, e := range joined.Unwrap() {
			errs = append(errs, flatten(e)...)
		}
		return errs
	}

	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		errs := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if e, ok := v.Index(i).Interface().(error); ok {
				errs = append(errs, e)
			}
		}
		return errs
	}

	if inner := errors.Unwrap(err); inner != nil {
		if errs := flatten(inner); len(errs) > 1 {
			return errs
		}
	}
	return []error{err}
}
