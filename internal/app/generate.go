package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/specialistvlad/psmgen/internal/firmware"
	"github.com/specialistvlad/psmgen/internal/output"
)

// Generate assembles every component and writes it under the output
// directory. Nothing is written when any component fails to assemble.
func (a *App) Generate(ctx context.Context) (units []*firmware.Unit, err error) {
	ctx = a.withLogger(ctx)
	started := time.Now()
	defer func() {
		a.metrics.ObserveRun(started, len(units), err)
		if a.config.MetricsFile == "" {
			return
		}
		if werr := a.metrics.WriteTextfile(a.config.MetricsFile); werr != nil {
			a.logger.Warn("Failed to export metrics.", "path", a.config.MetricsFile, "error", werr)
		}
	}()

	a.logger.Info("Generating firmware.", "model", a.config.ModelPath, "output", a.config.OutputDir)
	units, err = a.Assemble(ctx)
	if err != nil {
		return nil, err
	}
	if err := output.WriteUnits(ctx, a.config.OutputDir, units); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	for _, u := range units {
		a.metrics.ObserveComponent(u.Stats.Threads, u.Stats.CommTasks, u.Stats.ListenerTasks)
		for _, f := range u.Files {
			fmt.Fprintf(a.outW, "Generated %s\n", filepath.Join(a.config.OutputDir, u.Dir, f.Name))
		}
	}
	a.warnStale(units)
	a.logger.Info("Generation finished.", "components", len(units), "duration", time.Since(started))
	return units, nil
}

// warnStale reports sketches left in the output directory by components
// that are no longer part of the model.
func (a *App) warnStale(units []*firmware.Unit) {
	found, err := output.FindFilesByExtension(a.config.OutputDir, ".ino")
	if err != nil {
		a.logger.Warn("Failed to scan output directory.", "output", a.config.OutputDir, "error", err)
		return
	}
	current := make(map[string]struct{})
	for _, u := range units {
		for _, f := range u.Files {
			current[filepath.Join(u.Dir, f.Name)] = struct{}{}
		}
	}
	for _, rel := range found {
		if _, ok := current[rel]; !ok {
			a.logger.Warn("Sketch does not belong to any component in the model.", "path", filepath.Join(a.config.OutputDir, rel))
		}
	}
}

// Validate assembles every component in memory and prints a summary of
// what would be generated.
func (a *App) Validate(ctx context.Context) ([]*firmware.Unit, error) {
	ctx = a.withLogger(ctx)
	units, err := a.Assemble(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		a.printSummary(u)
	}
	a.logger.Info("Model is valid.", "components", len(units))
	return units, nil
}

func (a *App) printSummary(u *firmware.Unit) {
	s := u.Stats
	fmt.Fprintf(a.outW, "component %q (%s): %d functions, %d threads, %d comm tasks, %d listener tasks\n",
		u.Component.Name, u.Component.ID, s.Functions, s.Threads, s.CommTasks, s.ListenerTasks)

	ids := make([]string, 0, len(u.Topics))
	for id := range u.Topics {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fmt.Fprintf(a.outW, "  topic %s: %s\n", id, u.Topics[id])
	}
}
