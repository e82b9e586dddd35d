package stream

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/san-kum/pagescroll/internal/engine"
)

type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	mqtt.Client
	err  error
	sent []published
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return &fakeToken{err: c.err}
}

func TestPublisherFrames(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "test/frames", 1)

	p.OnFrame(engine.Frame{Namespace: "default", Target: "#a", Elapsed: 20 * time.Millisecond, Candidate: 40, Accepted: true})
	p.OnFrame(engine.Frame{Namespace: "default", Target: "#a", Elapsed: 30 * time.Millisecond, Candidate: 60, Accepted: true, Done: true})

	if len(client.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(client.sent))
	}
	if client.sent[0].topic != "test/frames" || client.sent[0].qos != 1 {
		t.Errorf("unexpected publish target %+v", client.sent[0])
	}

	var msg Message
	if err := json.Unmarshal(client.sent[1].payload, &msg); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if msg.Seq != 2 || msg.Position != 60 || msg.ElapsedMs != 30 || !msg.Done {
		t.Errorf("unexpected message %+v", msg)
	}

	sent, failed := p.Stats()
	if sent != 2 || failed != 0 {
		t.Errorf("expected 2 sent 0 failed, got %d %d", sent, failed)
	}
}

func TestPublisherCountsFailures(t *testing.T) {
	client := &fakeClient{err: errors.New("broker gone")}
	p := NewPublisher(client, "", 0)

	p.OnFrame(engine.Frame{Candidate: 1})

	if client.sent[0].topic != "pagescroll/frames" {
		t.Errorf("expected default topic, got %s", client.sent[0].topic)
	}
	sent, failed := p.Stats()
	if sent != 0 || failed != 1 {
		t.Errorf("expected 0 sent 1 failed, got %d %d", sent, failed)
	}
}

func TestFinishHook(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "t", 0)

	var got []bool
	hook := p.FinishHook("#bottom", func(ok bool) { got = append(got, ok) })
	hook(false)

	if len(got) != 1 || got[0] {
		t.Errorf("expected wrapped hook called with false, got %v", got)
	}
	if len(client.sent) != 1 || client.sent[0].topic != "t/finish" {
		t.Fatalf("expected one finish message, got %+v", client.sent)
	}
	var msg FinishMessage
	if err := json.Unmarshal(client.sent[0].payload, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Target != "#bottom" || msg.Completed {
		t.Errorf("unexpected finish message %+v", msg)
	}
}
