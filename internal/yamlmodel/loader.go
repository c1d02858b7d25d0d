// Package yamlmodel loads models written in YAML.
package yamlmodel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/model"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of model.Loader.
type Loader struct{}

// NewLoader creates a new YAML model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads one YAML model document. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*model.System, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	defer f.Close()

	sys, err := l.Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	sys.Source = path

	logger.Debug("YAML loading complete.", "components", len(sys.Components))
	return sys, nil
}

// Decode translates a YAML model read from r.
func (l *Loader) Decode(ctx context.Context, r io.Reader) (*model.System, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty model document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.System == nil {
		return nil, errors.New("model document has no system key")
	}
	return doc.System.translate(ctx)
}
