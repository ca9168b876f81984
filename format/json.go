package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/treeproc/treebank"
)

type JSONEncoder struct {
	w     io.Writer
	entry *treebank.Entry
	options
}

func NewJSONEncoder(w io.Writer, opts ...Option) *JSONEncoder {
	enc, _ := New("json", w, opts...)
	return enc.(*JSONEncoder)
}

func (e *JSONEncoder) Encode(entry *treebank.Entry) error {
	e.entry = entry
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	return write(e.w, append(text, '\n'))
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(NewDocument(e.entry, e.skipTerminals), "", "  ")
}
