package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

// @title Hotel Booking API
// @version 1.0
// @description Rooms, bookings and accounts of the hotel booking backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	http := di.InitializeService()
	http.Serve()
}
