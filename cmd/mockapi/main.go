package main

import (
	"flag"
	"io"
	"log"
	"os"

	"stuma/internal/config"
	"stuma/internal/mockapi"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	store, err := mockapi.Open(cfg.MockAPI.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	srv := mockapi.NewServer(store)
	log.Printf("[mockapi] listening on %s (db %s)", cfg.MockAPI.Addr, cfg.MockAPI.DSN)
	log.Fatal(srv.Listen(cfg.MockAPI.Addr))
}
