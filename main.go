package main

import (
	"log"
	"os"

	"github.com/queuectl/queuectl/cmd"
	"github.com/queuectl/queuectl/internal/config"
	"github.com/queuectl/queuectl/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal("Failed to create data directory: ", err)
	}

	store, err := storage.NewStore(cfg.DBPath())
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	defer store.Close()

	cmd.Execute(store, cfg)
}
