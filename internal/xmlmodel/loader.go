package xmlmodel

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/model"
)

// Loader is the XML implementation of model.Loader.
type Loader struct{}

// NewLoader creates a new XML model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and translates one XML model document.
func (l *Loader) Load(ctx context.Context, path string) (*model.System, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("XML loader started.", "path", path)

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

	logger.Debug("XML loading complete.", "components", len(sys.Components))
	return sys, nil
}

// Decode translates an XML model read from r.
func (l *Loader) Decode(ctx context.Context, r io.Reader) (*model.System, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return translateDocument(ctx, &doc)
}
