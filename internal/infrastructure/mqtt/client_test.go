package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/bakery-core/internal/infrastructure/config"
)

// testConfig returns an MQTT configuration pointing at a local broker.
func testConfig(clientID string) config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: clientID,
		},
		QoS:         1,
		TopicPrefix: "bakerytest",
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

// connectOrSkip connects to the local broker, skipping the test when none is running.
func connectOrSkip(t *testing.T, clientID string) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping broker test in short mode")
	}
	client, err := Connect(testConfig(clientID))
	if err != nil {
		t.Skipf("MQTT broker not available at 127.0.0.1:1883: %v", err)
	}
	t.Cleanup(func() { client.Close() }) //nolint:errcheck // Test cleanup
	return client
}

// =============================================================================
// Broker-free tests
// =============================================================================

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"system status", Topics{Prefix: "bakery"}.SystemStatus(), "bakery/system/status"},
		{"core event", Topics{Prefix: "bakery"}.CoreEvent("baked_good.created"), "bakery/core/event/baked_good.created"},
		{"all core events", Topics{Prefix: "bakery"}.AllCoreEvents(), "bakery/core/event/#"},
		{"all", Topics{Prefix: "bakery"}.All(), "bakery/#"},
		{"default prefix", Topics{}.SystemStatus(), "bakery/system/status"},
		{"custom prefix trailing slash", Topics{Prefix: "site1/"}.CoreEvent("bakery.updated"), "site1/core/event/bakery.updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestValidEventType(t *testing.T) {
	tests := map[string]bool{
		"baked_good.created": true,
		"bakery.updated":     true,
		"":                   false,
		"a/b":                false,
		"wild#":              false,
		"plus+":              false,
	}
	for in, want := range tests {
		if got := validEventType(in); got != want {
			t.Errorf("validEventType(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuildStatusPayload(t *testing.T) {
	var p statusPayload
	if err := json.Unmarshal(buildStatusPayload("offline", "bakery-core", reasonGraceful), &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if p.Status != "offline" || p.ClientID != "bakery-core" || p.Reason != reasonGraceful {
		t.Errorf("payload = %+v", p)
	}
	if _, err := time.Parse(time.RFC3339, p.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", p.Timestamp, err)
	}

	online := string(buildStatusPayload("online", "bakery-core", ""))
	if strings.Contains(online, "reason") {
		t.Errorf("online payload should omit reason: %s", online)
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testConfig("opts-test")
	cfg.Broker.TLS = true
	cfg.Auth = config.MQTTAuthConfig{Username: "baker", Password: "secret"}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 || opts.Servers[0].String() != "ssl://127.0.0.1:1883" {
		t.Errorf("Servers = %v, want [ssl://127.0.0.1:1883]", opts.Servers)
	}
	if opts.ClientID != "opts-test" {
		t.Errorf("ClientID = %q, want opts-test", opts.ClientID)
	}
	if opts.Username != "baker" || opts.Password != "secret" {
		t.Errorf("credentials = %q/%q, want baker/secret", opts.Username, opts.Password)
	}
	if opts.TLSConfig == nil {
		t.Error("TLSConfig = nil, want config when TLS enabled")
	}
	if !opts.AutoReconnect {
		t.Error("AutoReconnect = false, want true")
	}

	configureLWT(opts, Topics{Prefix: "bakery"}, "opts-test")
	if !opts.WillEnabled || opts.WillTopic != "bakery/system/status" || !opts.WillRetained {
		t.Errorf("will = enabled %v topic %q retained %v", opts.WillEnabled, opts.WillTopic, opts.WillRetained)
	}
}

func TestPublishValidation(t *testing.T) {
	c := &Client{}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", nil, 0, ErrInvalidTopic},
		{"invalid qos", "bakery/x", nil, 3, ErrInvalidQoS},
		{"payload too large", "bakery/x", make([]byte, maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "bakery/x", []byte("{}"), 1, ErrNotConnected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Publish(tt.topic, tt.payload, tt.qos, false); !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublishEventValidation(t *testing.T) {
	c := &Client{topics: Topics{Prefix: "bakery"}}

	if err := c.PublishEvent("bad/type", nil); !errors.Is(err, ErrInvalidEventType) {
		t.Errorf("PublishEvent(bad/type) error = %v, want %v", err, ErrInvalidEventType)
	}
	if err := c.PublishEvent("baked_good.created", make(chan int)); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("PublishEvent(chan) error = %v, want %v", err, ErrPublishFailed)
	}
	if err := c.PublishEvent("baked_good.created", map[string]int{"id": 1}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("PublishEvent() on unconnected client error = %v, want %v", err, ErrNotConnected)
	}
}

func TestUnconnectedClient(t *testing.T) {
	c := &Client{}

	if c.IsConnected() {
		t.Error("IsConnected() = true for uninitialised client")
	}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want %v", err, ErrNotConnected)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on uninitialised client error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestConnect_BrokerRefused(t *testing.T) {
	cfg := testConfig("refused-test")
	cfg.Broker.Port = 19998

	_, err := Connect(cfg)
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

// =============================================================================
// Broker tests (skipped without a local broker)
// =============================================================================

func TestConnectAndHealth(t *testing.T) {
	client := connectOrSkip(t, "bakery-test-health")

	if !client.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestPublishEventRoundtrip(t *testing.T) {
	client := connectOrSkip(t, "bakery-test-pub")

	sub := pahomqtt.NewClient(pahomqtt.NewClientOptions().
		AddBroker("tcp://127.0.0.1:1883").
		SetClientID("bakery-test-sub"))
	if token := sub.Connect(); !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		t.Fatalf("subscriber connect failed: %v", token.Error())
	}
	defer sub.Disconnect(100)

	received := make(chan pahomqtt.Message, 1)
	token := sub.Subscribe(client.Topics().AllCoreEvents(), 1, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		received <- msg
	})
	if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		t.Fatalf("subscribe failed: %v", token.Error())
	}

	if err := client.PublishEvent("baked_good.deleted", map[string]int64{"id": 7}); err != nil {
		t.Fatalf("PublishEvent() error = %v", err)
	}

	select {
	case msg := <-received:
		wantTopic := fmt.Sprintf("bakerytest/core/event/%s", "baked_good.deleted")
		if msg.Topic() != wantTopic {
			t.Errorf("topic = %q, want %q", msg.Topic(), wantTopic)
		}
		if string(msg.Payload()) != `{"id":7}` {
			t.Errorf("payload = %s, want {\"id\":7}", msg.Payload())
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for event")
	}
}
