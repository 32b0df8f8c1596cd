package main

import (
	"log"
	"os"

	"github.com/Govind-619/MarketSphere/cli"
	"github.com/Govind-619/MarketSphere/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	err := cli.Execute()
	utils.SyncLoggers()
	if err != nil {
		os.Exit(1)
	}
}
