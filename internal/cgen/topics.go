package cgen

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// Topic builds a message-bus topic from the system namespace and the ids of
// the publishing component and task.
func Topic(sys *model.System, componentID, taskID string) string {
	return strings.Join([]string{
		naming.Namespace(sys),
		naming.Normalize(componentID),
		naming.Normalize(taskID),
		"dependum",
	}, "/")
}

// CommTopic is the topic a comm task publishes to.
func CommTopic(sys *model.System, comp *model.Component, comm *model.CommTask) string {
	return Topic(sys, comp.ID, comm.ID)
}

// ListenerTopic is the topic a listener subscribes to: its paired comm
// task's topic, or its own when it names no pairing.
func ListenerTopic(sys *model.System, comp *model.Component, l *model.ListenerTask) string {
	if l.Paired() {
		return Topic(sys, l.PairedComponentID, l.PairedTaskID)
	}
	return Topic(sys, comp.ID, l.ID)
}

// TopicConstant renders the global holding n's topic.
func TopicConstant(n model.Node, topic string) string {
	return fmt.Sprintf("const char* %s = %s;", TopicVar(n), quote(topic))
}
