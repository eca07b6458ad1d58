package job

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"foldprep/internal/cif"
	"foldprep/internal/errs"
	"foldprep/internal/fileio"
)

// LoadTable reads an extra mmCIF category file: a YAML mapping from
// "_category.field" (or "data_") to a scalar or a list of scalars. Key order
// is kept. Scalars are used verbatim; null becomes "?".
func LoadTable(path string) (*cif.Table, error) {
	data, err := fileio.ReadAll(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTable decodes a table document.
func ParseTable(data []byte) (*cif.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errs.New(errs.InvalidInput, "", "table must be a mapping of category.field keys")
	}
	t := cif.NewTable()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, errs.New(errs.InvalidInput, fmt.Sprintf("line %d", key.Line), "keys must be scalars")
		}
		v, err := nodeValue(key.Value, val)
		if err != nil {
			return nil, err
		}
		if key.Value != cif.DataKey {
			if _, _, err := cif.SplitKey(key.Value); err != nil {
				return nil, err
			}
		}
		t.Set(key.Value, v)
	}
	return t, nil
}

func nodeValue(key string, n *yaml.Node) (cif.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return cif.Scalar(scalarText(n)), nil
	case yaml.SequenceNode:
		vs := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return cif.Value{}, errs.New(errs.UnsupportedValueShape, key, "list items must be scalars (line %d)", c.Line)
			}
			vs = append(vs, scalarText(c))
		}
		return cif.Column(vs...), nil
	case yaml.AliasNode:
		return nodeValue(key, n.Alias)
	}
	return cif.Value{}, errs.New(errs.UnsupportedValueShape, key, "value must be a scalar or a list of scalars (line %d)", n.Line)
}

func scalarText(n *yaml.Node) string {
	if n.ShortTag() == "!!null" {
		return "?"
	}
	return n.Value
}
