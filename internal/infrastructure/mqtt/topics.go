package mqtt

import (
	"fmt"
	"strings"
)

// DefaultTopicPrefix is the root of the topic hierarchy when none is configured.
const DefaultTopicPrefix = "bakery"

// Topics builds MQTT topic names under a common prefix.
//
//	topics := mqtt.Topics{Prefix: "bakery"}
//	topics.CoreEvent("baked_good.created")
//	// Returns: "bakery/core/event/baked_good.created"
type Topics struct {
	Prefix string
}

func (t Topics) root() string {
	if t.Prefix == "" {
		return DefaultTopicPrefix
	}
	return strings.TrimSuffix(t.Prefix, "/")
}

// SystemStatus returns the retained topic carrying online/offline status.
//
// Example: bakery/system/status
func (t Topics) SystemStatus() string {
	return t.root() + "/system/status"
}

// CoreEvent returns the topic for a domain event.
//
// Example: bakery/core/event/bakery.updated
func (t Topics) CoreEvent(eventType string) string {
	return fmt.Sprintf("%s/core/event/%s", t.root(), eventType)
}

// AllCoreEvents returns a wildcard matching every domain event.
//
// Example: bakery/core/event/#
func (t Topics) AllCoreEvents() string {
	return t.root() + "/core/event/#"
}

// All returns a wildcard matching every topic under the prefix.
func (t Topics) All() string {
	return t.root() + "/#"
}

// validEventType reports whether eventType can be used as a single topic level.
func validEventType(eventType string) bool {
	return eventType != "" && !strings.ContainsAny(eventType, "/#+")
}
