package firmware

import (
	"fmt"

	"github.com/specialistvlad/psmgen/internal/cgen"
	"github.com/specialistvlad/psmgen/internal/index"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
	"github.com/specialistvlad/psmgen/internal/resolve"
)

var includes = []string{
	"#include <WiFiNINA.h>",
	"#include <PubSubClient.h>",
	"#include <FreeRTOS_SAMD21.h>",
	"#include <task.h>",
	`#include "secrets.h"`,
	`#include "comm_utils.h"`,
	"#include <Arduino_JSON.h>",
	"#include <ArduinoJson.h>",
}

// sketch holds everything resolved for one component before rendering.
type sketch struct {
	idx  *index.Index
	comp *model.Component
	opts cgen.Options

	origins      map[string]*resolve.Linkage
	destinations map[string]*resolve.Linkage
	dependencies map[string]*resolve.Dependency
	topics       map[string]string
}

func (s *sketch) render() string {
	w := cgen.NewWriter()
	s.header(w)
	s.globals(w)
	s.setup(w)

	for _, l := range s.comp.ListenerTasks {
		w.Blank()
		cgen.Callback(w, l, s.opts)
	}
	for _, c := range s.comp.CommTasks {
		w.Blank()
		cgen.CommTaskBody(w, c, s.origins[c.ID])
	}
	for _, l := range s.comp.ListenerTasks {
		w.Blank()
		cgen.ListenerTaskBody(w, l, s.destinations[l.ID])
	}

	w.Blank()
	w.Block("void loop()", func() {
		w.Comment("Let FreeRTOS manage tasks, nothing to do here")
		w.Linef("delay(%d);", s.opts.IdleDelayMS)
	})

	for _, fn := range s.comp.Functions {
		w.Blank()
		cgen.FunctionBody(w, s.idx, fn)
	}
	for _, t := range s.comp.Threads {
		w.Blank()
		cgen.ThreadBody(w, t, s.dependencies[t.ID])
	}
	return w.String()
}

func (s *sketch) header(w *cgen.Writer) {
	w.Commentf("Component ID: %s", s.comp.ID)
	w.Commentf("Parent ID: %s", s.comp.ParentID)
	w.Commentf("Name: %s", s.comp.Name)
	w.Commentf("Description: %s", s.comp.Description)
	w.Blank()
	w.Lines(includes...)
	w.Blank()
}

func (s *sketch) globals(w *cgen.Writer) {
	comp := s.comp

	section(w, "Global variables for WiFi and MQTT connectivity", len(comp.ListenerTasks)+len(comp.CommTasks) > 0, func() {
		for _, l := range comp.ListenerTasks {
			cgen.Connectivity(w, comp, l)
		}
		for _, c := range comp.CommTasks {
			cgen.Connectivity(w, comp, c)
		}
	})
	w.Linef("bool debug = %t;", s.opts.Debug)
	w.Blank()

	section(w, "MQTT topics for this component (<system>/<component>/<task>/dependum)", len(s.topics) > 0, func() {
		for _, c := range comp.CommTasks {
			w.Line(cgen.TopicConstant(c, s.topics[c.ID]))
		}
		for _, l := range comp.ListenerTasks {
			w.Line(cgen.TopicConstant(l, s.topics[l.ID]))
		}
	})

	section(w, "Thread Status variables", len(comp.Threads) > 0, func() {
		for _, t := range comp.Threads {
			cgen.ThreadGlobals(w, t)
		}
	})

	hasOutputs := false
	for _, fn := range comp.Functions {
		hasOutputs = hasOutputs || len(fn.Outputs) > 0
	}
	section(w, "Function output variables", hasOutputs, func() {
		for _, fn := range comp.Functions {
			cgen.OutputGlobals(w, fn)
		}
	})

	selectors := s.modeSelectors()
	section(w, "Global Operation Mode Variables", len(selectors) > 0, func() {
		w.Lines(selectors...)
	})

	structs := cgen.NewWriter()
	for _, c := range comp.CommTasks {
		cgen.Struct(structs, c, c.Data)
	}
	for _, l := range comp.ListenerTasks {
		cgen.Struct(structs, l, l.Data)
	}
	for _, sw := range comp.SwResources {
		cgen.Struct(structs, sw, sw.Data)
	}
	section(w, "Global Data Structures (software resources and/or any dependum)", structs.Len() > 0, func() {
		w.Line(trimNewline(structs.String()))
	})

	section(w, "Comm Thread Handles", len(comp.CommTasks) > 0, func() {
		for _, c := range comp.CommTasks {
			w.Linef("TaskHandle_t %s;", cgen.TaskHandle(c))
		}
	})
	section(w, "Listener Thread Handles", len(comp.ListenerTasks) > 0, func() {
		for _, l := range comp.ListenerTasks {
			w.Linef("TaskHandle_t %s;", cgen.TaskHandle(l))
		}
	})
}

func (s *sketch) modeSelectors() []string {
	var lines []string
	add := func(n model.Node, modes model.Modes) {
		if sel, ok := cgen.ModeSelector(n, modes); ok {
			lines = append(lines, sel)
		}
	}
	for _, t := range s.comp.Threads {
		add(t, t.Modes)
	}
	for _, c := range s.comp.CommTasks {
		add(c, c.Modes)
	}
	for _, l := range s.comp.ListenerTasks {
		add(l, l.Modes)
	}
	return lines
}

func (s *sketch) setup(w *cgen.Writer) {
	comp := s.comp
	w.Block("void setup()", func() {
		w.Block("if (debug)", func() {
			w.Linef("Serial.begin(%d);", s.opts.SerialBaud)
			w.Line("while (!Serial);")
		})
		w.Line("connectToWiFi();")

		if len(comp.CommTasks)+len(comp.ListenerTasks) > 0 {
			w.Blank()
			w.Comment("Connect every client to the broker and subscribe to its topic")
			for _, c := range comp.CommTasks {
				cgen.Connect(w, c)
			}
			for _, l := range comp.ListenerTasks {
				cgen.Connect(w, l)
			}
		}

		w.Blank()
		w.Comment("Create tasks for the operational goals")
		for _, t := range comp.Threads {
			cgen.TaskCreate(w, t, s.opts)
		}
		for _, c := range comp.CommTasks {
			cgen.TaskCreate(w, c, s.opts)
		}
		for _, l := range comp.ListenerTasks {
			cgen.TaskCreate(w, l, s.opts)
		}

		w.Blank()
		w.Comment("Start the threads")
		w.Line("vTaskStartScheduler();")
	})
}

// section writes a titled group of globals followed by a blank line, or
// nothing when the group is empty.
func section(w *cgen.Writer, title string, present bool, body func()) {
	if !present {
		return
	}
	w.Comment(title)
	body()
	w.Blank()
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}

// sketchName is the file name of a component's main sketch.
func sketchName(comp *model.Component) string {
	return fmt.Sprintf("%s.ino", naming.FileStem(cgen.Symbol(comp)))
}
