package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dictionary is a user-supplied word list applied after the built-in
// normalization: terms to ignore outright and domain synonyms to fold
// together (e.g. two spellings of the same rider name).
type Dictionary struct {
	Ignore  []string          `yaml:"ignore"`
	Replace map[string]string `yaml:"replace"`

	ignoreSet map[string]struct{}
}

// LoadDictionary reads a YAML dictionary file.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	d.index()
	return &d, nil
}

func (d *Dictionary) index() {
	d.ignoreSet = make(map[string]struct{}, len(d.Ignore))
	for _, w := range d.Ignore {
		d.ignoreSet[Word(w)] = struct{}{}
	}
}

// Apply maps a normalized word through the dictionary. An empty result
// means the word is ignored.
func (d *Dictionary) Apply(word string) string {
	if d == nil || word == "" {
		return word
	}
	if d.ignoreSet == nil {
		d.index()
	}
	if _, ok := d.ignoreSet[word]; ok {
		return ""
	}
	if repl, ok := d.Replace[word]; ok {
		return Word(repl)
	}
	return word
}
