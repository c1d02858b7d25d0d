package cgen

import (
	"fmt"

	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/resolve"
)

// ThreadGlobals writes the goal-state flag and task handle of t.
func ThreadGlobals(w *Writer, t *model.Thread) {
	w.Linef("bool %s = false; // Global variable for thread %s (ID: %s)", resolve.GoalVariable(t), Symbol(t), t.ID)
	w.Linef("TaskHandle_t %s;", TaskHandle(t))
}

// ThreadBody writes the periodic task evaluating t's goal state.
func ThreadBody(w *Writer, t *model.Thread, dep *resolve.Dependency) {
	sym := Symbol(t)
	w.Commentf("Task for %s", sym)
	w.Block(fmt.Sprintf("void %s(void *pvParameters)", TaskFunc(t)), func() {
		taskDelay(w, t.PeriodMS)
		w.Blank()
		w.Commentf("--- %s Context Information ---", sym)
		w.Commentf("ID: %s", t.ID)
		w.Commentf("ID CIM Parent: %s", t.ParentID)
		Annotations(w, t.Annotations)
		w.Blank()
		w.Block("for (;;)", func() {
			w.Comment("--- Your code goes here ---")
			w.Commentf("Evaluate the state of %s", sym)
			w.Lines(dep.Lines()...)
			if t.Modes.Active() {
				w.Blank()
				ModeSwitch(w, t, t.Modes)
			}
			w.Comment("--- Your code ends here ---")
			w.Blank()
			w.Line("vTaskDelay(xDelay);")
		})
	})
}
