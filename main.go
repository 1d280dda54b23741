package main

import (
	"os"

	"terminfinder-api/core/logger"
	"terminfinder-api/core/server"
)

// @title Terminfinder API
// @version 1.0
// @description Group availability scheduling: share a group code, collect availability and find common slots

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Group session token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
