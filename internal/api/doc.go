// Package api implements the HTTP API and WebSocket event feed for the bakery service.
//
// This package provides:
//   - Form-encoded CRUD endpoints for bakeries and baked goods
//   - WebSocket hub broadcasting domain events to subscribed clients
//   - Middleware stack (request ID, logging, metrics, recovery, CORS, rate limit)
//   - Health and Prometheus metrics endpoints
//   - TLS support for production deployments
//
// # Events
//
// Every committed write emits a domain event (baked_good.created,
// baked_good.deleted, bakery.updated). Events go to WebSocket subscribers and,
// when configured, to MQTT and InfluxDB. Delivery failures are logged and never
// change the HTTP response.
//
// # Graceful Degradation
//
// MQTT and InfluxDB are optional. The API serves every route without them.
package api
