package mqtt

import (
	"encoding/json"
	"fmt"
)

// maxPayloadSize caps a single message at 1MB.
const maxPayloadSize = 1 << 20

// Publish sends a message to the specified MQTT topic.
//
// QoS must be 0, 1 or 2. Retained messages are kept by the broker for new
// subscribers; use them for status, not for events.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishEvent JSON-encodes payload and publishes it, not retained, to the
// event topic for eventType using the configured QoS.
//
// Example:
//
//	err := client.PublishEvent("baked_good.deleted", map[string]int64{"id": 4})
//	// Published to bakery/core/event/baked_good.deleted
func (c *Client) PublishEvent(eventType string, payload any) error {
	if !validEventType(eventType) {
		return fmt.Errorf("%w: %q", ErrInvalidEventType, eventType)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding %s payload: %w", ErrPublishFailed, eventType, err)
	}

	return c.Publish(c.topics.CoreEvent(eventType), data, byte(c.cfg.QoS), false)
}
