// Package events publishes lab events to an MQTT broker. The publisher
// mirrors the websocket hub onto an external bus so classroom dashboards
// and automation can follow deployments without holding an HTTP
// connection open.
//
// Publishing is optional: with no broker configured every call is a
// no-op, and a broker outage never blocks or fails a lab operation.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"evalgo.org/emulium/internal/config"
)

const (
	connectTimeout       = 10 * time.Second
	connectRetryInterval = 5 * time.Second
	keepAlive            = 30 * time.Second
	disconnectQuiesceMS  = 250
)

// Publisher sends lab events to an MQTT broker at QoS 0.
type Publisher struct {
	client  mqtt.Client
	prefix  string
	enabled bool
}

// message is the wire format of one published event.
type message struct {
	Event     string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// New creates a publisher from configuration. The publisher is disabled
// (and every method a no-op) while no broker is configured.
func New(cfg config.EventsConfig) *Publisher {
	if cfg.Broker == "" {
		return &Publisher{}
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "emulium"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(connectRetryInterval).
		SetKeepAlive(keepAlive)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Printf("Event publisher connected to %s", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("Event publisher lost connection: %v", err)
	})

	prefix := cfg.TopicPrefix
	if prefix == "" {
		prefix = "emulium/labs"
	}

	return &Publisher{
		client:  mqtt.NewClient(opts),
		prefix:  prefix,
		enabled: true,
	}
}

// Enabled reports whether a broker is configured.
func (p *Publisher) Enabled() bool {
	return p.enabled
}

// Start connects to the broker. The client keeps retrying in the
// background after a failed first attempt, so a slow broker only delays
// event delivery.
func (p *Publisher) Start() error {
	if !p.enabled {
		return nil
	}

	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("timeout connecting to MQTT broker")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

// Publish sends one event below the configured topic prefix,
// fire-and-forget. Marshal failures and delivery failures are logged,
// never returned: the event bus must not interfere with lab operations.
func (p *Publisher) Publish(event string, data interface{}) {
	if !p.enabled {
		return
	}

	payload, err := json.Marshal(message{
		Event:     event,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		log.Printf("Event publisher: failed to marshal %s event: %v", event, err)
		return
	}

	topic := p.prefix + "/" + event
	p.client.Publish(topic, 0, false, payload)
}

// Close disconnects from the broker, allowing in-flight messages a
// short grace period.
func (p *Publisher) Close() {
	if !p.enabled {
		return
	}
	p.client.Disconnect(disconnectQuiesceMS)
}
