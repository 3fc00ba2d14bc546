package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// printer печатает результат команды в выбранном формате.
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch format {
	case formatJSON, formatYAML:
		return &printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

func (p *printer) print(v any) error {
	const op = "nutricare/print"

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if p.format == formatJSON {
		_, err = fmt.Fprintf(p.w, "%s\n", raw)
		return err
	}

	// YAML строится из JSON, чтобы ключи совпадали с json-тегами моделей.
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	plain(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = p.w.Write(out)
	return err
}

// plain снимает flow-стиль и кавычки, унаследованные от JSON.
func plain(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plain(c)
	}
}
