package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/MJE43/war-sim-go/internal/api"
	"github.com/MJE43/war-sim-go/internal/store"
)

func main() {
	var (
		addr   = flag.String("addr", ":8080", "listen address")
		dbPath = flag.String("db", "warsim.db", "SQLite database path (empty disables persistence)")
	)
	flag.Parse()

	var db store.DB
	if *dbPath != "" {
		sqlite, err := store.NewSQLiteDB(*dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer sqlite.Close()

		if err := sqlite.Migrate(); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
		db = sqlite
	}

	server := api.NewServer(db)

	log.Printf("listening addr=%s db=%q engine=%s", *addr, *dbPath, api.EngineVersion)
	if err := http.ListenAndServe(*addr, server.Routes()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
