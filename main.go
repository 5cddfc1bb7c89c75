package main

import (
	"log"

	"github.com/SehaTech/auth_service/config"
	"github.com/SehaTech/auth_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.AccessSecret == "" {
		log.Fatal("ACCESS_SECRET is required")
	}

	api.StartServer(cfg)
}
