package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementBakedGoodPrice = "baked_good_price"
	MeasurementEvents         = "bakery_events"
)

// WriteBakedGoodPrice records the price of a baked good at a point in time.
//
// bakery_id is a tag so prices can be grouped per bakery; the item's ID and
// name are fields since they are unbounded.
func (c *Client) WriteBakedGoodPrice(bakeryID, bakedGoodID int64, name string, price float64, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	c.WritePointWithTime(MeasurementBakedGoodPrice,
		map[string]string{
			"bakery_id": strconv.FormatInt(bakeryID, 10),
		},
		map[string]interface{}{
			"baked_good_id": bakedGoodID,
			"name":          name,
			"price":         price,
		},
		at,
	)
}

// WriteEvent counts one occurrence of a domain event.
func (c *Client) WriteEvent(eventType string) {
	c.WritePoint(MeasurementEvents,
		map[string]string{"type": eventType},
		map[string]interface{}{"count": 1},
	)
}

// WritePoint writes a point stamped with the current time.
//
// Example:
//
//	client.WritePoint("bakery_events",
//	    map[string]string{"type": "bakery.updated"},
//	    map[string]interface{}{"count": 1})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.WritePointWithTime(measurement, tags, fields, time.Now())
}

// WritePointWithTime writes a point with an explicit timestamp.
// Points written while disconnected are dropped.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, timestamp))
}
