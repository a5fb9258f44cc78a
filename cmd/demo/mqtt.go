package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTScopeSource subscribes to the given topics and merges each
// JSON-object payload into the ambient scope.  A non-object payload
// lands under a variable named after its topic (slashes become dots).
//
// topics is comma-separated.  Blocks until the context is done.
func (s *Service) MQTTScopeSource(ctx context.Context, broker, clientId, topics string) error {

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientId)
	opts.SetKeepAlive(10 * time.Second)
	opts.AutoReconnect = true

	client := mqtt.NewClient(opts)
	if t := client.Connect(); t.Wait() && t.Error() != nil {
		return t.Error()
	}

	handler := func(_ mqtt.Client, m mqtt.Message) {
		var x interface{}
		if err := json.Unmarshal(m.Payload(), &x); err != nil {
			s.Logf("MQTTScopeSource can't parse %s payload: %v", m.Topic(), err)
			return
		}

		if vars, is := x.(map[string]interface{}); is {
			s.MergeScope(vars)
			return
		}

		name := strings.Replace(m.Topic(), "/", ".", -1)
		s.SetScopeVar(name, x)
	}

	for _, topic := range strings.Split(topics, ",") {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		if t := client.Subscribe(topic, 0, handler); t.Wait() && t.Error() != nil {
			return t.Error()
		}
		log.Printf("MQTTScopeSource subscribed to %s", topic)
	}

	<-ctx.Done()

	client.Disconnect(100)

	return nil
}
