package cgen

import (
	"strings"

	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// Symbol is the identifier stem every global of an element derives from.
func Symbol(n model.Node) string {
	return naming.Normalize(n.NodeName())
}

func StructVar(n model.Node) string     { return Symbol(n) + "_data_structure" }
func ModeVar(n model.Node) string       { return Symbol(n) + "_operation_mode" }
func TopicVar(n model.Node) string      { return Symbol(n) + "_topic" }
func ClientIDVar(n model.Node) string   { return Symbol(n) + "ClientId" }
func WiFiClientVar(n model.Node) string { return Symbol(n) + "Client" }
func MQTTClientVar(n model.Node) string { return Symbol(n) + "MqttClient" }
func CallbackFunc(n model.Node) string  { return "callback_" + Symbol(n) }

// TaskFunc is the name of the FreeRTOS task function running n.
func TaskFunc(n model.Node) string {
	switch n.Kind() {
	case model.KindCommTask:
		return "publishDependum_" + Symbol(n) + "Task"
	case model.KindListenerTask:
		return "receiveDependum_" + Symbol(n) + "Task"
	}
	return Symbol(n) + "Task"
}

// TaskHandle is the name of the handle xTaskCreate fills in for n.
func TaskHandle(n model.Node) string {
	return "Task" + strings.TrimSuffix(TaskFunc(n), "Task")
}

// quote renders s as a C string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
