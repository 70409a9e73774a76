package main

import (
	stdLog "log"
	"time"

	"github.com/Astemirdum/elibrary-service/library/app"
	"github.com/Astemirdum/elibrary-service/library/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// @title E-Library API
// @version 1.0
// @description Book inventory, printout orders and admin reports.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, using process environment")
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
