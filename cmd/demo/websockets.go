package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketService is the firehose: every op the service broadcasts
// (scope changes, document writes, re-renders) goes to every
// connected client.  A client can also send a JSON object, which is
// merged into the ambient scope.
func (s *Service) WebSocketService(ctx context.Context) error {

	var upgrader = websocket.Upgrader{} // use default options

	conns := sync.Map{}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case x := <-s.ops:
				conns.Range(func(k, v interface{}) bool {
					c := v.(chan interface{})
					select {
					case c <- x:
					default:
						log.Printf("%v ops blocked", k)
					}
					return true
				})
			}
		}
	}()

	api := func(w http.ResponseWriter, r *http.Request) {
		s.Logf("Service.WebSocketService connection")

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error", err)
			return
		}
		defer c.Close()

		ctl := make(chan bool)
		defer close(ctl)

		// Never closed: the broadcaster may hold a reference
		// after this connection is gone, and a send on a
		// closed channel would take the whole process down.
		// ctl terminates the writer instead.
		in := make(chan interface{}, 32)

		id := c.RemoteAddr().String()
		conns.Store(id, in)
		defer conns.Delete(id)

		go func() {
			mt := websocket.TextMessage

		LOOP:
			for {
				select {
				case <-ctl:
					break LOOP
				case <-ctx.Done():
					break LOOP
				case x := <-in:
					js, err := json.Marshal(&x)
					if err != nil {
						log.Printf("s.firehose Marshal error %v on %#v", err, x)
						continue
					}
					if err = c.WriteMessage(mt, js); err != nil {
						log.Println("s.firehose write:", err)
					}
				}
			}
		}()

		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("read error", err)
				break
			}

			var vars map[string]interface{}
			if err := json.Unmarshal(message, &vars); err != nil {
				s.Broadcast(map[string]interface{}{
					"op":    "error",
					"error": "can't parse: " + err.Error(),
				})
				continue
			}
			s.MergeScope(vars)
		}
	}

	http.HandleFunc("/api/websocket", api)

	return nil
}
