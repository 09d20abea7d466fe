package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/card-catalog/configs"
	"github.com/avvvet/card-catalog/internal/catalogsvc/broker"
	svcconfig "github.com/avvvet/card-catalog/internal/catalogsvc/config"
	"github.com/avvvet/card-catalog/internal/catalogsvc/db"
	handlers "github.com/avvvet/card-catalog/internal/catalogsvc/handlers"
	"github.com/avvvet/card-catalog/internal/catalogsvc/service"
	"github.com/avvvet/card-catalog/internal/catalogsvc/store"
	mongodb "github.com/avvvet/card-catalog/internal/db"
	nats "github.com/avvvet/card-catalog/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "catalog"

func main() {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := svcconfig.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME+"_service_"+instanceId, cfg.LogDir, cfg.LogLevel)

	cardStore, closeStore := openStore(cfg)
	defer closeStore()

	cardService := service.NewCardService(cardStore)

	// NATS is optional, without it no card events are published
	var sub interface{ Unsubscribe() error }
	if cfg.NatsURL != "" {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"_service_"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Close()
		log.Printf("NATS connection established successfully %s", n.Url)

		b := broker.NewBroker(n.Conn, cardService)
		cardService.SetNotifier(b)

		s, err := b.QueueSubscribeService(broker.ServiceTopic, SERVICE_NAME)
		if err != nil {
			log.Fatalf("Error: unable to subscribe to queue %v", err)
		}
		sub = s
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.CORSOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, instanceId)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s with %s store", SERVICE_NAME, server.Addr, cfg.StoreDriver)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			log.Warnf("nats unsubscribe: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}

// openStore builds the card store selected by cfg.StoreDriver and returns a
// function releasing its connections.
func openStore(cfg svcconfig.Config) (store.CardStore, func()) {
	switch cfg.StoreDriver {
	case svcconfig.DriverMongo:
		mdb, err := mongodb.ConnectToDB(cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		log.Printf("mongo connection established successfully, database %s", mdb.Name())
		return store.NewMongoCardStore(mdb), func() {
			if err := mongodb.Disconnect(mdb); err != nil {
				log.Warnf("mongo disconnect: %v", err)
			}
		}
	case svcconfig.DriverMemory:
		log.Warn("using in-memory card store, data is lost on restart")
		return store.NewMemoryCardStore(), func() {}
	default:
		dbpool, err := db.Connect(cfg.DBUrl)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		log.Printf("pg connection established successfully")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.EnsureSchema(ctx, dbpool); err != nil {
			log.Fatalf("Failed to prepare cards table: %v", err)
		}
		return store.NewPgCardStore(dbpool), db.ClosePool
	}
}
