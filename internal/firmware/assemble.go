package firmware

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/psmgen/internal/cgen"
	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/index"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
	"github.com/specialistvlad/psmgen/internal/resolve"
)

// Settings tune every component assembled in one run.
type Settings struct {
	Options cgen.Options
	Secrets Secrets
}

// DefaultSettings returns the default firmware options and placeholder
// credentials.
func DefaultSettings() Settings {
	return Settings{Options: cgen.DefaultOptions(), Secrets: DefaultSecrets()}
}

// Validate checks both the firmware options and the credentials.
func (s Settings) Validate() error {
	if err := s.Options.Validate(); err != nil {
		return fmt.Errorf("firmware: %w", err)
	}
	if err := s.Secrets.Validate(); err != nil {
		return fmt.Errorf("secrets: %w", err)
	}
	return nil
}

// File is one generated file.
type File struct {
	Name    string
	Content []byte
}

// Stats counts what a Unit generated.
type Stats struct {
	Functions     int
	Threads       int
	CommTasks     int
	ListenerTasks int
	Bytes         int
}

// Unit is the complete, in-memory output for one component.
type Unit struct {
	Component *model.Component
	// Dir is the directory name the files are written under.
	Dir   string
	Files []File
	// Topics maps comm and listener task ids to their topics.
	Topics map[string]string
	Stats  Stats
}

// Assemble resolves and renders every file of comp. All resolution problems
// of the component are reported together.
func Assemble(ctx context.Context, idx *index.Index, comp *model.Component, settings Settings) (*Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx).With("component", comp.ID)

	s, err := resolveSketch(idx, comp, settings.Options)
	if err != nil {
		return nil, err
	}

	ino := []byte(s.render())
	secrets, err := renderSecrets(settings.Secrets)
	if err != nil {
		return nil, err
	}
	utils, err := commUtils()
	if err != nil {
		return nil, err
	}

	unit := &Unit{
		Component: comp,
		Dir:       DirName(comp),
		Files: []File{
			{Name: sketchName(comp), Content: ino},
			{Name: SecretsFile, Content: secrets},
			{Name: CommUtilsFile, Content: utils},
		},
		Topics: s.topics,
		Stats: Stats{
			Functions:     len(comp.Functions),
			Threads:       len(comp.Threads),
			CommTasks:     len(comp.CommTasks),
			ListenerTasks: len(comp.ListenerTasks),
		},
	}
	for _, f := range unit.Files {
		unit.Stats.Bytes += len(f.Content)
	}
	logger.Debug("Assembled component.", "dir", unit.Dir, "bytes", unit.Stats.Bytes)
	return unit, nil
}

func resolveSketch(idx *index.Index, comp *model.Component, opts cgen.Options) (*sketch, error) {
	sys := idx.System()
	s := &sketch{
		idx:          idx,
		comp:         comp,
		opts:         opts,
		origins:      make(map[string]*resolve.Linkage),
		destinations: make(map[string]*resolve.Linkage),
		dependencies: make(map[string]*resolve.Dependency),
		topics:       make(map[string]string),
	}

	var problems model.ValidationErrors
	for _, c := range comp.CommTasks {
		origin, err := resolve.CommOrigin(idx, c)
		problems.Add(err)
		s.origins[c.ID] = origin
		s.topics[c.ID] = cgen.CommTopic(sys, comp, c)
	}
	for _, l := range comp.ListenerTasks {
		dest, err := resolve.ListenerDestination(idx, l)
		problems.Add(err)
		s.destinations[l.ID] = dest
		s.topics[l.ID] = cgen.ListenerTopic(sys, comp, l)
	}
	for _, t := range comp.Threads {
		dep, err := resolve.Dependencies(idx, t)
		problems.Add(err)
		s.dependencies[t.ID] = dep
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// AssembleAll assembles every component of the indexed system in model
// order. Problems from every component are aggregated into one
// *model.ValidationErrors.
func AssembleAll(ctx context.Context, idx *index.Index, settings Settings) ([]*Unit, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	comps := idx.System().Components
	units := make([]*Unit, len(comps))
	errs := make([]error, len(comps))
	for i, comp := range comps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		units[i], errs[i] = Assemble(ctx, idx, comp, settings)
	}

	var problems model.ValidationErrors
	for _, err := range errs {
		var ve *model.ValidationErrors
		if errors.As(err, &ve) {
			for _, e := range ve.Errors {
				problems.Add(e)
			}
			continue
		}
		problems.Add(err)
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}
	return units, nil
}

// DirName is the directory a component's files are written under: its name
// with path separators replaced.
func DirName(comp *model.Component) string {
	return naming.DirName(comp.Name, comp.ID)
}
