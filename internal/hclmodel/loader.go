package hclmodel

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/model"
)

// Loader is the HCL implementation of model.Loader.
type Loader struct{}

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses one HCL file and translates its system block.
func (l *Loader) Load(ctx context.Context, path string) (*model.System, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if len(root.Systems) != 1 {
		return nil, fmt.Errorf("HCL file %s must declare exactly one system block, found %d", path, len(root.Systems))
	}

	sys, err := l.translateSystem(ctx, root.Systems[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	sys.Source = path

	logger.Debug("HCL loading complete.", "components", len(sys.Components))
	return sys, nil
}
