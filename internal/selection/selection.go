// Package selection is the result a selector hands back to its caller: an
// optional operation, the chosen object ids and extra arguments.
package selection

import (
	"encoding/json"
	"fmt"
	"io"
)

// Selection is written to stderr as one JSON line when a selector exits
// with a result.
type Selection struct {
	Operation *string  `json:"operation"`
	IDs       []string `json:"ids"`
	Args      []string `json:"args"`
}

// WithOperation returns a copy with the operation set.
func (s Selection) WithOperation(op string) Selection {
	s.Operation = &op
	return s
}

// WithID returns a copy with id appended.
func (s Selection) WithID(id string) Selection {
	s.IDs = append(append([]string(nil), s.IDs...), id)
	return s
}

// WithArg returns a copy with arg appended.
func (s Selection) WithArg(arg string) Selection {
	s.Args = append(append([]string(nil), s.Args...), arg)
	return s
}

// OperationName returns the operation or "".
func (s Selection) OperationName() string {
	if s.Operation == nil {
		return ""
	}
	return *s.Operation
}

// MarshalJSON renders empty lists as [] rather than null.
func (s Selection) MarshalJSON() ([]byte, error) {
	type plain Selection
	p := plain(s)
	if p.IDs == nil {
		p.IDs = []string{}
	}
	if p.Args == nil {
		p.Args = []string{}
	}
	return json.Marshal(p)
}

func (s Selection) String() string {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("selection(%v)", s.IDs)
	}
	return string(data)
}

// Write encodes s as a single line to w.
func Write(w io.Writer, s Selection) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("selection: marshal: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("selection: write: %w", err)
	}
	return nil
}
