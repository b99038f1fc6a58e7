package featuremodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Parser decodes feature-model JSON documents into Models.
type Parser struct {
	maxSize  int64 // Maximum document size in bytes (default: 10MB)
	maxDepth int   // Maximum tree depth (default: 64)
}

// NewParser creates a new parser with default limits.
func NewParser() *Parser {
	return &Parser{
		maxSize:  10 * 1024 * 1024,
		maxDepth: 64,
	}
}

// WithMaxSize sets the maximum document size.
func (p *Parser) WithMaxSize(size int64) *Parser {
	p.maxSize = size
	return p
}

// WithMaxDepth sets the maximum feature tree depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// Parse parses a feature-model document held in memory with the default parser.
func Parse(data []byte) (*Model, error) {
	return NewParser().ParseBytes(data, "<bytes>")
}

// ParseFile reads and parses the feature-model document at path.
func (p *Parser) ParseFile(path string) (*Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, NewParseError(path, "failed to access file", err)
	}
	if info.Size() > p.maxSize {
		return nil, NewParseError(path,
			fmt.Sprintf("file size %d exceeds maximum %d bytes", info.Size(), p.maxSize), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewParseError(path, "failed to read file", err)
	}
	return p.ParseBytes(data, path)
}

// ParseReader reads the whole document from r and parses it.
func (p *Parser) ParseReader(r io.Reader, source string) (*Model, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxSize+1))
	if err != nil {
		return nil, NewParseError(source, "failed to read document", err)
	}
	return p.ParseBytes(data, source)
}

// ParseBytes parses a feature-model document. The model is returned only if
// decoding, structural checks and indexing all succeed.
func (p *Parser) ParseBytes(data []byte, source string) (*Model, error) {
	if int64(len(data)) > p.maxSize {
		return nil, NewParseError(source,
			fmt.Sprintf("document size %d exceeds maximum %d bytes", len(data), p.maxSize), nil)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var raw rawModel
	if err := dec.Decode(&raw); err != nil {
		return nil, NewParseError(source, "malformed JSON", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, NewParseError(source, "unexpected data after feature model document", err)
	}

	if len(raw.Features) != 1 {
		return nil, NewParseError(source,
			fmt.Sprintf("expected exactly one root feature, found %d", len(raw.Features)), nil)
	}

	b := &builder{source: source, maxDepth: p.maxDepth}
	root, err := b.buildFeature(raw.Features[0], 0)
	if err != nil {
		return nil, err
	}
	if root.ID != RootID {
		return nil, NewParseError(source,
			fmt.Sprintf("root feature must have id %d, got %d", RootID, root.ID), nil)
	}

	model := &Model{
		Name:        raw.Name,
		Description: raw.Description,
		Features:    []*Feature{root},
	}
	if dup, ok := model.buildIndex(); !ok {
		return nil, NewParseError(source, fmt.Sprintf("duplicate feature id %d", dup), nil)
	}

	return model, nil
}

// builder converts raw decoded features into the Feature tree.
type builder struct {
	source   string
	maxDepth int
}

func (b *builder) buildFeature(raw *rawFeature, depth int) (*Feature, error) {
	if raw == nil {
		return nil, NewParseError(b.source, "null feature entry", nil)
	}
	if depth >= b.maxDepth {
		return nil, NewParseError(b.source,
			fmt.Sprintf("feature tree exceeds maximum depth %d", b.maxDepth), nil)
	}
	if raw.ID == nil {
		return nil, NewParseError(b.source,
			fmt.Sprintf("feature %q is missing an id", raw.Name), nil)
	}
	// 0 and -1 are slot sentinels and can never name a feature.
	if *raw.ID <= 0 {
		return nil, NewParseError(b.source,
			fmt.Sprintf("feature %q has invalid id %d", raw.Name, *raw.ID), nil)
	}

	f := &Feature{
		ID:                      *raw.ID,
		Name:                    raw.Name,
		IsMandatory:             raw.IsMandatory,
		HasOrSubfeatures:        raw.HasOrSubfeatures,
		HasXorSubfeatures:       raw.HasXorSubfeatures,
		IsMaterial:              raw.IsMaterial,
		IsPhysical:              raw.IsPhysical,
		RequiringDependencyFrom: raw.RequiringDependencyFrom,
		RequiringDependencyTo:   raw.RequiringDependencyTo,
		ExcludingDependency:     raw.ExcludingDependency,
		Material:                raw.Material,
		Metadata:                raw.Metadata,
		Features:                make([]*Feature, 0, len(raw.Features)),
	}

	for _, child := range raw.Features {
		built, err := b.buildFeature(child, depth+1)
		if err != nil {
			return nil, err
		}
		f.Features = append(f.Features, built)
	}

	return f, nil
}
