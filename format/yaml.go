package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/treeproc/treebank"
)

// YAMLEncoder writes one YAML document per entry, separated by ---.
type YAMLEncoder struct {
	w       io.Writer
	entry   *treebank.Entry
	written int
	options
}

func NewYAMLEncoder(w io.Writer, opts ...Option) *YAMLEncoder {
	enc, _ := New("yaml", w, opts...)
	return enc.(*YAMLEncoder)
}

func (e *YAMLEncoder) Encode(entry *treebank.Entry) error {
	e.entry = entry
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if e.written > 0 {
		text = append([]byte("---\n"), text...)
	}
	e.written++
	return write(e.w, text)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(NewDocument(e.entry, e.skipTerminals))
}
