package main

import (
	"context"
	"log"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/bootstrap"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/config"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/server"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/tracer"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start the extraction worker
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Serve
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
