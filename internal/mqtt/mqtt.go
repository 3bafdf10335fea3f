package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pgarat123/livesky/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ReadingMessage is the JSON payload a station publishes on the readings
// topic. It mirrors the POST /api/data body: device_id is required, the
// timestamp and every measurement are optional.
type ReadingMessage struct {
	DeviceID      *int64     `json:"device_id"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
	Temperature   *float64   `json:"temperature,omitempty"`
	Humidity      *float64   `json:"humidity,omitempty"`
	Pressure      *float64   `json:"pressure,omitempty"`
	WindSpeed     *float64   `json:"wind_speed,omitempty"`
	WindDirection *string    `json:"wind_direction,omitempty"`
}

type Subscriber struct {
	client    mqtt.Client
	cfg       config.Config
	logger    *slog.Logger
	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once

	// MessageHandler is called for each parsed reading message
	MessageHandler func(msg ReadingMessage) error
}

// ReadingSubscriber interface for attaching message handlers
type ReadingSubscriber interface {
	SetMessageHandler(handler func(msg ReadingMessage) error)
}

// SetMessageHandler sets the handler for incoming reading messages
func (s *Subscriber) SetMessageHandler(handler func(msg ReadingMessage) error) {
	s.MessageHandler = handler
}

func NewSubscriber(cfg config.Config, logger *slog.Logger) *Subscriber {
	s := &Subscriber{
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTTBroker, cfg.MQTTPort))
	opts.SetClientID(cfg.MQTTClientID)

	// Session settings
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	// Keepalive / timeouts
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	// Callbacks keep internal state accurate
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		s.setConnected(true)
		logger.Info("mqtt connected", "broker", cfg.MQTTBroker, "port", cfg.MQTTPort)
	})

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.setConnected(false)
		logger.Warn("mqtt connection lost", "error", err)
	})

	s.client = mqtt.NewClient(opts)
	return s
}

// Connect establishes connection to the MQTT broker and subscribes to the configured topic.
func (s *Subscriber) Connect(ctx context.Context) error {
	// Fail fast if already stopped.
	select {
	case <-s.stopCh:
		return fmt.Errorf("subscriber stopped")
	default:
	}

	// Fast path.
	if s.IsConnected() {
		return nil
	}

	// Start connect attempt.
	token := s.client.Connect()

	// Wait in a ctx/stop-aware loop.
	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			// OnConnectHandler sets connected=true.
			break
		}

		select {
		case <-ctx.Done():
			s.client.Disconnect(0)
			return ctx.Err()
		case <-s.stopCh:
			s.client.Disconnect(0)
			return fmt.Errorf("subscriber stopped")
		default:
		}
	}

	// Subscribe to the topic
	if err := s.subscribe(); err != nil {
		s.client.Disconnect(0)
		return fmt.Errorf("subscribe: %w", err)
	}

	return nil
}

func (s *Subscriber) subscribe() error {
	if !s.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	topic := s.cfg.MQTTTopic
	qos := byte(1) // At least once delivery

	messageHandler := func(client mqtt.Client, msg mqtt.Message) {
		s.handleMessage(msg.Topic(), msg.Payload())
	}

	token := s.client.Subscribe(topic, qos, messageHandler)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("subscribe timeout for topic %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, token.Error())
	}

	s.logger.Info("subscribed to mqtt topic", "topic", topic, "qos", qos)
	return nil
}

func (s *Subscriber) handleMessage(topic string, payload []byte) {
	s.logger.Debug("received mqtt message", "topic", topic, "size", len(payload))

	var msg ReadingMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		s.logger.Warn("failed to parse reading message",
			"topic", topic,
			"error", err,
			"payload", string(payload),
		)
		return
	}

	// device_id is the only hard requirement; measurements are stored as
	// published, any subset of them.
	if msg.DeviceID == nil {
		s.logger.Warn("reading message without device_id", "topic", topic)
		return
	}

	if s.MessageHandler != nil {
		if err := s.MessageHandler(msg); err != nil {
			s.logger.Error("message handler failed",
				"topic", topic,
				"device_id", *msg.DeviceID,
				"error", err,
			)
		} else {
			s.logger.Debug("processed reading message",
				"device_id", *msg.DeviceID,
			)
		}
	}
}

// IsConnected returns whether the client is connected.
func (s *Subscriber) IsConnected() bool {
	s.mu.RLock()
	connected := s.connected
	s.mu.RUnlock()
	return connected && s.client.IsConnected()
}

// Disconnect stops the subscriber and closes the MQTT connection.
// Idempotent and safe to call multiple times.
func (s *Subscriber) Disconnect() {
	// Signal shutdown once (unblocks any Connect loops).
	s.stopOnce.Do(func() { close(s.stopCh) })

	// Unsubscribe before disconnecting
	if s.client != nil && s.IsConnected() {
		token := s.client.Unsubscribe(s.cfg.MQTTTopic)
		token.WaitTimeout(2 * time.Second)
	}

	// Disconnect without holding s.mu to avoid lock contention/deadlocks.
	if s.client != nil {
		s.client.Disconnect(250)
	}

	// Update our internal state.
	s.setConnected(false)
	s.logger.Info("mqtt subscriber disconnected")
}

func (s *Subscriber) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}
