package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketFirehose(t *testing.T) {
	s, _ := testService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.WebSocketService(ctx); err != nil {
		t.Fatal(err)
	}

	hs := httptest.NewServer(http.DefaultServeMux)
	defer hs.Close()

	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/api/websocket"

	// Keep broadcasting until somebody hears us: the connection
	// registers asynchronously, and early ops just fall on the
	// floor.
	done := make(chan bool)
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(10 * time.Millisecond):
				s.SetScopeVar("user", "Homer")
			}
		}
	}()

	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	c.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := c.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(msg), "Homer") {
		t.Fatal(string(msg))
	}

	// A client that goes away mid-broadcast must not take the
	// broadcaster (or the process) with it.
	c.Close()
	for i := 0; i < 50; i++ {
		s.SetScopeVar("n", i)
	}
	time.Sleep(100 * time.Millisecond)

	// And the service is still serving.
	c2, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()

	c2.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := c2.ReadMessage(); err != nil {
		t.Fatal(err)
	}
}
