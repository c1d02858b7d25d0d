package resolve

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/psmgen/internal/index"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// Dependency is the resolved goal-state logic of one thread.
type Dependency struct {
	Thread *model.Thread

	// Toggle is set when nothing feeds the thread; its goal state then
	// simply flips every period.
	Toggle bool

	// Declarations initialize the arguments of every function term, once
	// per distinct statement.
	Declarations []string
	Join         model.Operator
	Terms        []string
}

// GoalVariable returns the name of the thread's goal-state boolean.
func GoalVariable(t *model.Thread) string {
	return naming.Normalize(t.Name) + "_GoalAchieved"
}

// Dependencies resolves the relations targeting thread into a goal
// expression. The first relation's operator joins all terms.
func Dependencies(idx *index.Index, thread *model.Thread) (*Dependency, error) {
	dep := &Dependency{Thread: thread}
	relations := idx.RelationsTo(thread.ID)
	if len(relations) == 0 {
		dep.Toggle = true
		return dep, nil
	}

	dep.Join = relations[0].Join()
	seen := make(map[string]struct{})
	for _, r := range relations {
		source, ok := idx.Lookup(r.Source)
		if !ok {
			return nil, model.Errorf(model.KindThread, thread.ID, model.ErrUnresolvedReference, "relation source '%s'", r.Source)
		}
		switch src := source.(type) {
		case *model.Thread:
			dep.Terms = append(dep.Terms, GoalVariable(src))
		case *model.Function:
			args := make([]string, 0, len(src.Inputs))
			for _, in := range src.Inputs {
				decl := naming.Statement(in.Type, naming.VariableName("", in.Name), naming.Init)
				if _, dup := seen[decl]; !dup {
					seen[decl] = struct{}{}
					dep.Declarations = append(dep.Declarations, decl)
				}
				args = append(args, naming.VariableName("", in.Name))
			}
			dep.Terms = append(dep.Terms, fmt.Sprintf("%s(%s)", naming.Normalize(src.Name), strings.Join(args, ", ")))
		default:
			return nil, model.Errorf(model.KindThread, thread.ID, model.ErrUnsupportedEndpoint,
				"relation source '%s' is a %s; only threads and functions can feed a thread", r.Source, source.Kind())
		}
	}
	return dep, nil
}

// Expression renders the right-hand side of the goal assignment.
func (d *Dependency) Expression() string {
	if d.Toggle {
		return "!" + GoalVariable(d.Thread)
	}
	return "(" + strings.Join(d.Terms, " "+string(d.Join)+" ") + ")"
}

// Lines renders the declarations followed by the goal assignment.
func (d *Dependency) Lines() []string {
	goal := GoalVariable(d.Thread)
	if d.Toggle {
		return []string{fmt.Sprintf("%s = %s; // Toggle state for simulation", goal, d.Expression())}
	}
	lines := append([]string{}, d.Declarations...)
	return append(lines, fmt.Sprintf("%s = %s;", goal, d.Expression()))
}
