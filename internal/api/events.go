package api

// Domain event types. They double as WebSocket channels and MQTT topic suffixes.
const (
	EventBakedGoodCreated = "baked_good.created"
	EventBakedGoodDeleted = "baked_good.deleted"
	EventBakeryUpdated    = "bakery.updated"
)

// Event sinks, as labelled in the events metric.
const (
	sinkWebSocket = "websocket"
	sinkMQTT      = "mqtt"
	sinkInfluxDB  = "influxdb"
)

// DeletedEvent is the payload of baked_good.deleted.
type DeletedEvent struct {
	ID int64 `json:"id"`
}

// emit fans a committed change out to every configured sink.
// Failures are logged; the HTTP response is already decided.
func (s *Server) emit(eventType string, payload any) {
	if s.hub != nil {
		s.hub.Broadcast(eventType, payload)
		s.recordEvent(sinkWebSocket, nil)
	}

	if s.publisher != nil {
		err := s.publisher.PublishEvent(eventType, payload)
		if err != nil {
			s.logger.Warn("event publish failed", "event_type", eventType, "sink", sinkMQTT, "error", err)
		}
		s.recordEvent(sinkMQTT, err)
	}

	if s.prices != nil {
		s.prices.WriteEvent(eventType)
		s.recordEvent(sinkInfluxDB, nil)
	}
}

func (s *Server) recordEvent(sink string, err error) {
	if s.metrics != nil {
		s.metrics.RecordEventPublished(sink, err)
	}
}
