package patch

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// editFile is the on-disk form of an EditSet:
//
//	removals: [3, 7]
//	styles:
//	  2: {padding: 8px, margin: 0 auto}
type editFile struct {
	Removals []int         `yaml:"removals,omitempty" json:"removals,omitempty"`
	Styles   map[int]Style `yaml:"styles,omitempty" json:"styles,omitempty"`
}

func (f editFile) editSet() EditSet {
	out := NewEditSet()
	for id, style := range f.Styles {
		out = out.WithStyle(id, style)
	}
	for _, id := range f.Removals {
		out = out.WithRemoval(id)
	}
	return out
}

// MarshalYAML implements yaml.Marshaler.
func (e EditSet) MarshalYAML() (any, error) {
	return editFile{Removals: e.Removals(), Styles: maps.Clone(e.styles)}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Styles on removed ids are
// dropped, as WithRemoval would.
func (e *EditSet) UnmarshalYAML(node *yaml.Node) error {
	var file editFile
	if err := node.Decode(&file); err != nil {
		return err
	}

	*e = file.editSet()
	return nil
}

// ParseEditSet decodes an edit set from YAML. Empty input is an empty set.
func ParseEditSet(data []byte) (EditSet, error) {
	var e EditSet
	if err := yaml.Unmarshal(data, &e); err != nil {
		return EditSet{}, fmt.Errorf("parsing edits: %w", err)
	}
	return e, nil
}

// ReadEditSet decodes an edit set from r.
func ReadEditSet(r io.Reader) (EditSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return EditSet{}, fmt.Errorf("reading edits: %w", err)
	}
	return ParseEditSet(data)
}

// ParseEditSetJSON decodes an edit set from JSON. Comments and trailing
// commas are allowed. Style keys are element ids written as strings:
//
//	{"removals": [3], "styles": {"2": {"padding": "8px"}}}
func ParseEditSetJSON(data []byte) (EditSet, error) {
	var file editFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return EditSet{}, fmt.Errorf("parsing edits: %w", err)
	}
	return file.editSet(), nil
}

// LoadEditSet reads an edit set from a file. Files ending in .json or
// .jsonc are read as JSON; anything else as YAML.
func LoadEditSet(path string) (EditSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EditSet{}, fmt.Errorf("reading edits: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return ParseEditSetJSON(data)
	default:
		return ParseEditSet(data)
	}
}

// MarshalEditSet encodes an edit set as YAML.
func MarshalEditSet(e EditSet) ([]byte, error) {
	data, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding edits: %w", err)
	}
	return data, nil
}
