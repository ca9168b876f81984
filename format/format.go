// Package format renders parsed trees as JSON, YAML or a console report.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/treeproc/treebank"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(entry *treebank.Entry) error
}

// New returns the encoder registered under name: json, yaml or report.
func New(name string, w io.Writer, opts ...Option) (Encoder, error) {
	o := options{skipTerminals: true}
	for _, opt := range opts {
		opt(&o)
	}
	switch name {
	case "json":
		return &JSONEncoder{w: w, options: o}, nil
	case "yaml":
		return &YAMLEncoder{w: w, options: o}, nil
	case "report", "text":
		return &ReportEncoder{w: w, options: o}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

type options struct {
	skipTerminals bool
	color         bool
}

type Option func(*options)

// SkipTerminals leaves rules rewriting to a single leaf out of the rule list.
func SkipTerminals(skip bool) Option {
	return func(o *options) {
		o.skipTerminals = skip
	}
}

// Color enables styled headings in the report.
func Color(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

func write(w io.Writer, text []byte) error {
	_, err := w.Write(text)
	return err
}
