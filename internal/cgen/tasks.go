package cgen

import (
	"fmt"

	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
	"github.com/specialistvlad/psmgen/internal/resolve"
)

// Connectivity writes the client id, network client and MQTT client globals
// a comm or listener task connects with.
func Connectivity(w *Writer, comp *model.Component, task model.Node) {
	clientID := fmt.Sprintf("%sClient_%s_%s", naming.Normalize(comp.Name), naming.Normalize(comp.ID), Symbol(task))
	w.Linef("const char* %s = %s;", ClientIDVar(task), quote(clientID))
	w.Linef("WiFiClient %s;", WiFiClientVar(task))
	w.Linef("PubSubClient %s(%s);", MQTTClientVar(task), WiFiClientVar(task))
}

// Connect writes the setup() statements configuring and connecting a task's
// MQTT client. Listeners register their callback.
func Connect(w *Writer, task model.Node) {
	if task.Kind() == model.KindListenerTask {
		w.Linef("mqttSetup(%s, %s);", MQTTClientVar(task), CallbackFunc(task))
	} else {
		w.Linef("mqttSetup(%s);", MQTTClientVar(task))
	}
	w.Line(reconnect(task))
}

func reconnect(task model.Node) string {
	return fmt.Sprintf("connectToMQTT(%s, %s, %s);", MQTTClientVar(task), ClientIDVar(task), TopicVar(task))
}

// TaskCreate writes the xTaskCreate call starting n's task.
func TaskCreate(w *Writer, n model.Node, opts Options) {
	w.Line("xTaskCreate(")
	w.Indent()
	w.Linef("%s, // Function to implement the task", TaskFunc(n))
	w.Linef("%s, // Name of the task", quote(TaskFunc(n)))
	w.Linef("%d, // Stack size (in words, not bytes)", opts.StackDepth)
	w.Line("NULL, // Task input parameter")
	w.Linef("%d, // Priority of the task", opts.Priority)
	w.Linef("&%s // Task handle", TaskHandle(n))
	w.Dedent()
	w.Line(");")
}

func taskDelay(w *Writer, periodMS int) {
	w.Comment("This variable handles the period in milliseconds for task execution")
	w.Linef("const TickType_t xDelay = pdMS_TO_TICKS(%d);", periodMS)
}

// CommTaskBody writes the periodic task publishing comm's data structure.
func CommTaskBody(w *Writer, comm *model.CommTask, origin *resolve.Linkage) {
	w.Block(fmt.Sprintf("void %s(void *pvParameters)", TaskFunc(comm)), func() {
		w.Comment("")
		w.Comment("--- Comm Task Information ---")
		w.Commentf("Name: %s", comm.Name)
		w.Commentf("ID: %s", comm.ID)
		w.Commentf("Description: This Comm Task is responsible for generating the dependum: %s", StructVar(comm))
		w.Comment("")
		w.Comment("Note for Developers:")
		w.Commentf("The `dependum` data should be generated by the %s.", origin.Statement())
		w.Comment("Ensure it completes its operation and provides the required data")
		w.Comment("in the appropriate format for transmission.")
		w.Comment("")
		Annotations(w, comm.Annotations)
		w.Comment("")
		taskDelay(w, comm.PeriodMS)
		w.Blank()

		client := MQTTClientVar(comm)
		w.Block("for (;;)", func() {
			w.Comment("Create a JSON object for the dependum")
			w.Line("JSONVar dependumJson;")
			if !comm.Data.Valid() {
				w.Line(InvalidStructComment)
			} else {
				for _, f := range comm.Data.Fields {
					w.Linef("dependumJson[%s] = %s;", quote(naming.VariableName("", f.Name)), member(comm, f))
				}
			}
			w.Blank()
			w.Comment("Convert the JSON object to a string")
			w.Line("String dependumMessage = JSON.stringify(dependumJson);")
			w.Blank()
			if ModeSwitch(w, comm, comm.Modes) {
				w.Blank()
			}
			w.Block(fmt.Sprintf("if (!%s.connected())", client), func() {
				w.Line(reconnect(comm))
			})
			w.Linef("%s.loop();", client)
			w.IfElse(fmt.Sprintf("%s.publish(%s, dependumMessage.c_str())", client, TopicVar(comm)), func() {
				w.Block("if (debug)", func() {
					w.Linef("Serial.println(%s);", quote("Dependum published successfully for "+comm.Name+"!"))
					w.Line(`Serial.print("Topic: ");`)
					w.Linef("Serial.println(%s);", TopicVar(comm))
					w.Line(`Serial.print("Message: ");`)
					w.Line("Serial.println(dependumMessage);")
				})
			}, func() {
				w.Block("if (debug)", func() {
					w.Linef("Serial.println(%s);", quote("Failed to publish dependum for "+comm.Name+"."))
				})
			})
			w.Line("vTaskDelay(xDelay);")
		})
	})
}

// ListenerTaskBody writes the periodic task keeping listener's subscription
// alive and polling for messages.
func ListenerTaskBody(w *Writer, listener *model.ListenerTask, destination *resolve.Linkage) {
	w.Block(fmt.Sprintf("void %s(void *pvParameters)", TaskFunc(listener)), func() {
		w.Comment("")
		w.Comment("--- Listener Task Information ---")
		w.Commentf("Name: %s", listener.Name)
		w.Commentf("ID: %s", listener.ID)
		w.Commentf("Description: This Listener Task is responsible for receiving the dependum: %s", StructVar(listener))
		w.Comment("")
		w.Comment("Note for Developers:")
		w.Commentf("The `dependum` data should be stored on and then retrieved from the %s.", destination.Statement())
		w.Comment("Ensure it completes its operation and receives the required data")
		w.Comment("in the appropriate format for reception.")
		w.Comment("")
		Annotations(w, listener.Annotations)
		w.Comment("")
		taskDelay(w, listener.PeriodMS)
		w.Blank()

		client := MQTTClientVar(listener)
		w.Block("for (;;)", func() {
			w.Comment("Check MQTT connection status")
			w.Block(fmt.Sprintf("if (!%s.connected())", client), func() {
				w.Line(reconnect(listener))
			})
			w.Blank()
			w.Comment("Always poll MQTT for new messages")
			w.Linef("%s.loop();", client)
			w.Blank()
			w.Line("vTaskDelay(xDelay);")
		})
	})
}

// Callback writes the message handler decoding listener's payload into its
// global struct.
func Callback(w *Writer, listener *model.ListenerTask, opts Options) {
	w.Block(fmt.Sprintf("void %s(char* topic, byte* payload, unsigned int length)", CallbackFunc(listener)), func() {
		w.Block("if (debug)", func() {
			w.Line(`Serial.print("Message arrived on topic: ");`)
			w.Line("Serial.println(topic);")
		})
		w.Comment("Parse the incoming JSON message")
		w.Linef("StaticJsonDocument<%d> doc;", opts.JSONCapacity)
		w.Line("DeserializationError error = deserializeJson(doc, payload, length);")
		w.Blank()
		w.IfElse("!error", func() {
			if !listener.Data.Valid() {
				w.Line(InvalidStructComment)
			} else {
				for _, f := range listener.Data.Fields {
					w.Line(extract(listener, f))
				}
			}
			w.Blank()
			w.Block("if (debug)", func() {
				w.Line(`Serial.println("Dependum data received:");`)
				if !listener.Data.Valid() {
					return
				}
				for _, f := range listener.Data.Fields {
					w.Linef("Serial.print(%s);", quote(naming.VariableName("", f.Name)+": "))
					w.Linef("Serial.println(%s);", member(listener, f))
				}
			})
		}, func() {
			w.Line(`Serial.println("Error parsing JSON message");`)
		})
		w.Blank()
		w.Comment("Your custom code to process the dependum can go here")
		ModeSwitch(w, listener, listener.Modes)
	})
}

// extract renders the assignment copying one field out of the decoded
// document. Arrays are copied with a bounded string copy.
func extract(n model.Node, f model.Field) string {
	key := quote(naming.VariableName("", f.Name))
	if naming.ResolveType(f.Type).IsArray {
		return fmt.Sprintf("strlcpy(%s, doc[%s] | \"\", sizeof(%s));", member(n, f), key, member(n, f))
	}
	return fmt.Sprintf("%s = doc[%s];", member(n, f), key)
}
