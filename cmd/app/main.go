package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/notifier"
	"marketplace/internal/adapters/out/postgres/caserepo"
	"marketplace/internal/adapters/out/postgres/historyrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/rabbitmq"
	"marketplace/internal/adapters/out/refundclient"

	httpin "marketplace/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	connection, err := rabbitmq.NewConnection(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer connection.Close()

	publisher, err := rabbitmq.NewOrderEventPublisher(connection)
	if err != nil {
		log.Fatalf("Failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		publisher,
		refundclient.NewClient(configs.RefundServiceURL),
		notifier.NewClient(configs.NotificationServiceURL),
		logger,
	)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL:             goDotEnvVariable("RABBITMQ_URL"),
		RefundServiceURL:        goDotEnvVariable("REFUND_SERVICE_URL"),
		NotificationServiceURL:  goDotEnvVariable("NOTIFICATION_SERVICE_URL"),
		ReturnWindowDays:        goDotEnvIntVariable("RETURN_WINDOW_DAYS"),
		DeliveryAutoConfirmDays: goDotEnvIntVariable("DELIVERY_AUTO_CONFIRM_DAYS"),
		DeliveryConfirmCron:     goDotEnvVariable("DELIVERY_CONFIRM_CRON"),
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

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.SubOrderDTO{},
		&orderrepo.SubOrderItemDTO{},
		&caserepo.CaseDTO{},
		&caserepo.CaseItemDTO{},
		&historyrepo.HistoryEntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Validator = httpin.NewRequestValidator()

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
