// Package main is a demo page-rendering service: documents with
// expression-bound props, an ambient scope fed by MQTT, cron, and
// HTTP sources, and a WebSocket firehose of changes.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/fieldexpr/fieldexpr/cmd/demo/storage"
	"github.com/fieldexpr/fieldexpr/cmd/demo/storage/bolt"
	"github.com/fieldexpr/fieldexpr/core"
)

func main() {

	var (
		dbFile   = flag.String("d", "pages.db", "storage filename (empty for in-memory)")
		evalName = flag.String("e", core.DefaultEvaluatorName, "evaluator name")
		httpPort = flag.String("h", ":8080", "HTTP port for our service")
		seedSite = flag.String("seed", "demo", "site to seed (empty to skip)")

		mqttBroker = flag.String("mqtt", "", "MQTT broker (e.g. tcp://localhost:1883)")
		mqttTopics = flag.String("topics", "scope", "comma-separated MQTT topics")

		cron = flag.String("cron", "0 * * * * * *", "cron schedule for the \"now\" variable")

		fetchURL  = flag.String("fetch", "", "URL to poll for JSON scope data")
		fetchVar  = flag.String("fetch-var", "data", "scope variable for fetched data")
		fetchIntv = flag.Duration("fetch-interval", time.Minute, "fetch polling interval")

		verbose = flag.Bool("v", false, "log lots of wonderful things")
	)

	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store storage.Storage
	if *dbFile == "" {
		store = storage.NewMem()
	} else {
		b, err := bolt.NewStorage(*dbFile)
		if err != nil {
			panic(err)
		}
		if err = b.Open(); err != nil {
			panic(err)
		}
		defer b.Close() // ToDo: Check error.
		b.Debug = *verbose
		store = b
	}

	s, err := NewService(ctx, store, *evalName)
	if err != nil {
		panic(err)
	}
	s.Verbose = *verbose

	if *seedSite != "" {
		if err := s.SeedSite(ctx, *seedSite); err != nil {
			panic(err)
		}
	}

	if *mqttBroker != "" {
		go func() {
			if err := s.MQTTScopeSource(ctx, *mqttBroker, "fieldexpr-demo", *mqttTopics); err != nil {
				log.Printf("MQTTScopeSource error %v", err)
			}
		}()
	}

	if *cron != "" {
		go func() {
			if err := s.CronScope(ctx, *cron); err != nil {
				log.Printf("CronScope error %v", err)
			}
		}()
	}

	if *fetchURL != "" {
		go func() {
			if err := s.FetchScope(ctx, *fetchVar, *fetchURL, *fetchIntv); err != nil {
				log.Printf("FetchScope error %v", err)
			}
		}()
	}

	if err := s.WebSocketService(ctx); err != nil {
		panic(err)
	}
	s.HTTPService(ctx)

	log.Printf("listening on %s", *httpPort)
	log.Fatal(http.ListenAndServe(*httpPort, nil))
}
