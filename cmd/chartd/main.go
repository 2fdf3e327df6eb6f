package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"catalystChart/internal/chart"
	"catalystChart/internal/config"
	"catalystChart/internal/market"
	"catalystChart/internal/render"
	"catalystChart/internal/server"
	"catalystChart/internal/storage"
)

func main() {
	cfg := config.Load()

	// Ensure parent directory for the DB exists
	_ = os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	db, err := storage.OpenSQLite("file:" + cfg.DBPath + "?_fk=1")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	log.Printf("db: opened sqlite at %s", cfg.DBPath)
	if err := storage.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	log.Println("db: schema ensured (renders table)")

	cal := chart.DefaultCalendar()
	engine := chart.NewEngine(chart.DefaultConfig(), cal)
	srv := server.New(
		engine,
		market.NewProvider(cal),
		storage.NewStore(db),
		render.NewCache(60*time.Second),
		cfg.EventsPath,
	)
	log.Printf("chart: engine ready, event catalog at %s", cfg.EventsPath)

	addr := ":" + cfg.Port
	log.Println("http: listening on", addr)
	if err := server.ListenAndServe(addr, srv.Mux()); err != nil {
		log.Println("server error:", err)
		os.Exit(1)
	}
}
