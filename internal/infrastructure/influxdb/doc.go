// Package influxdb records bakery price telemetry in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. Every baked good
// created through the API becomes a baked_good_price point, and every
// domain event a bakery_events point, so price history and write activity
// can be charted without touching the SQLite store.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // telemetry off
//	}
//	defer client.Close()
//
//	client.WriteBakedGoodPrice(good.BakeryID, good.ID, good.Name, good.Price, good.CreatedAt)
//
// Writes are non-blocking and batched according to batch_size and
// flush_interval; failures arrive through the SetOnError callback.
package influxdb
