package vocabulary

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultVocabulary []byte

// Default returns the built-in vocabulary.
func Default() (*Store, error) {
	src, err := Parse(defaultVocabulary)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in vocabulary: %w", err)
	}
	return Build(src), nil
}

// Load reads a vocabulary file and builds a Store from it.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file %q: %w", path, err)
	}

	src, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing vocabulary file %q: %w", path, err)
	}
	return Build(src), nil
}

// Parse decodes a YAML vocabulary document. Unknown keys are rejected.
func Parse(data []byte) (Source, error) {
	var src Source

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&src); err != nil && !errors.Is(err, io.EOF) {
		return Source{}, err
	}
	return src, nil
}
