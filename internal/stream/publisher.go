package stream

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/san-kum/pagescroll/internal/config"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/logging"
	"github.com/san-kum/pagescroll/internal/scroll"
)

const publishTimeout = 2 * time.Second

// Message is the JSON payload published for every frame.
type Message struct {
	Seq       uint64  `json:"seq"`
	Namespace string  `json:"namespace"`
	Target    string  `json:"target"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Position  float64 `json:"position"`
	Accepted  bool    `json:"accepted"`
	Done      bool    `json:"done"`
}

// FinishMessage is published on <topic>/finish when an animation ends.
type FinishMessage struct {
	Target    string `json:"target"`
	Completed bool   `json:"completed"`
}

// Publisher streams engine frames to an MQTT topic. It is an
// engine.Observer.
type Publisher struct {
	client mqtt.Client
	topic  string
	qos    byte

	mu     sync.Mutex
	seq    uint64
	sent   int
	failed int
}

func NewPublisher(client mqtt.Client, topic string, qos byte) *Publisher {
	if topic == "" {
		topic = config.DefaultTopic
	}
	return &Publisher{client: client, topic: topic, qos: qos}
}

func (p *Publisher) OnFrame(f engine.Frame) {
	p.mu.Lock()
	p.seq++
	msg := Message{
		Seq:       p.seq,
		Namespace: f.Namespace,
		Target:    f.Target,
		ElapsedMs: float64(f.Elapsed) / float64(time.Millisecond),
		Position:  f.Candidate,
		Accepted:  f.Accepted,
		Done:      f.Done,
	}
	p.mu.Unlock()

	p.publish(p.topic, msg)
}

// FinishHook wraps next so the finish event is also published.
func (p *Publisher) FinishHook(target string, next scroll.FinishFunc) scroll.FinishFunc {
	return func(completed bool) {
		p.publish(p.topic+"/finish", FinishMessage{Target: target, Completed: completed})
		if next != nil {
			next(completed)
		}
	}
}

func (p *Publisher) publish(topic string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		p.fail(err)
		return
	}

	token := p.client.Publish(topic, p.qos, false, b)
	if !token.WaitTimeout(publishTimeout) {
		p.fail(fmt.Errorf("publish to %s timed out", topic))
		return
	}
	if err := token.Error(); err != nil {
		p.fail(err)
		return
	}

	p.mu.Lock()
	p.sent++
	p.mu.Unlock()
}

func (p *Publisher) fail(err error) {
	p.mu.Lock()
	p.failed++
	p.mu.Unlock()
	logging.Warn("mqtt: %v", err)
}

// Stats returns the number of published and failed messages.
func (p *Publisher) Stats() (sent, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent, p.failed
}

// Connect dials the broker described by cfg.
func Connect(cfg config.MQTTConfig) (mqtt.Client, error) {
	options := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			logging.Info("mqtt: connected to %s", cfg.Broker)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logging.Warn("mqtt: connection lost: %v", err)
		})
	client := mqtt.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt: connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect to %s: %w", cfg.Broker, err)
	}
	return client, nil
}
