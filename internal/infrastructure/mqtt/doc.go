// Package mqtt publishes bakery domain events to an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - JSON event publishing under {prefix}/core/event/{type}
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// Other systems (stock displays, analytics) subscribe to the event topics;
// the service itself never subscribes.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.PublishEvent("baked_good.created", good)
//
// Use TLS (cfg.Broker.TLS=true) outside local development.
package mqtt
