package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/companyrepo"
	"fulfillment/internal/adapters/out/postgres/counterrepo"
	"fulfillment/internal/adapters/out/postgres/employeerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/packingrepo"
	"fulfillment/internal/adapters/out/postgres/photorepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateCloseExpiredShipmentsCommandHandler(),
		autoCloseInterval(configs),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, logger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		TelegramBotToken:         goDotEnvVariable("TELEGRAM_BOT_TOKEN"),
		AutoCloseIntervalSeconds: goDotEnvVariable("AUTO_CLOSE_INTERVAL_SECONDS"),
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

func autoCloseInterval(configs cmd.Config) int {
	interval, err := strconv.Atoi(configs.AutoCloseIntervalSeconds)
	if err != nil || interval <= 0 {
		log.Fatalf("AUTO_CLOSE_INTERVAL_SECONDS must be a positive integer")
	}
	return interval
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the employee repository relies on for claim arbitration.
	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&companyrepo.CompanyDTO{},
		&productrepo.ProductDTO{},
		&employeerepo.EmployeeDTO{},
		&packingrepo.EventDTO{},
		&shipmentrepo.RequestDTO{},
		&counterrepo.DailyCounterDTO{},
		&photorepo.OrderPhotoDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateCompleteReceivingCommandHandler(),
		app.CreateRecordPackingCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateOverrideStatusCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderLinesQueryHandler(),
		app.CreateGetPackingEventsQueryHandler(),
		app.CreateValidateBarcodeInOrderQueryHandler(),
		logger,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
