package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deliveryops/cmd"
	deliveryhttp "deliveryops/internal/adapters/in/http"
	"deliveryops/internal/generated/servers"
	"deliveryops/internal/metrics"
)

func main() {
	configs := getConfigs()

	app, err := cmd.NewCompositionRoot(configs)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer app.Close()

	metrics.Register()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		AWSRegion:           goDotEnvVariable("AWS_REGION"),
		AWSAccessKeyID:      goDotEnvVariable("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:  goDotEnvVariable("AWS_SECRET_ACCESS_KEY"),
		OrdersTable:         goDotEnvVariable("ORDERS_TABLE"),
		KafkaHost:           goDotEnvVariable("KAFKA_HOST"),
		KafkaAnalyticsTopic: goDotEnvVariable("KAFKA_ANALYTICS_TOPIC"),
		BulkConcurrency:     goDotEnvVariable("BULK_CONCURRENCY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := deliveryhttp.NewServer(
		app.CreateDeliverOrderCommandHandler(),
		app.CreateBulkDeliverCommandHandler(),
		app.CreateGetDeliveryStatusQueryHandler(),
	)
	servers.RegisterHandlers(e, server)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
