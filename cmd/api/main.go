package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/config"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/integrations/backend"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/logging"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/media"
	miniorepo "github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/minio"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/postgres"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	transporthttp "github.com/mroblesv/Viajes_Admin_BackEnd/internal/transport/http"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/transport/mail"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		lw, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer lw.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, lw))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}
	storage := miniorepo.NewStorage(minioClient)

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("invalid SESSION_TTL: %v", err)
	}
	backendTimeout, err := time.ParseDuration(cfg.BackendTimeout)
	if err != nil {
		log.Fatalf("invalid BACKEND_TIMEOUT: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	roleRepo := postgres.NewRoleRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	agencyRepo := postgres.NewAgencyRepo(db)
	countryRepo := postgres.NewCountryRepo(db)
	cityRepo := postgres.NewCityRepo(db)
	providerRepo := postgres.NewProviderRepo(db)
	promotionRepo := postgres.NewPromotionRepo(db)
	packageRepo := postgres.NewPackageRepo(db)
	saleRepo := postgres.NewSaleRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	reminderRepo := postgres.NewReminderRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, sessionTTL)
	directory := backend.NewClient(cfg.BackendAPIURL, cfg.BackendAPIKey, backendTimeout)
	mailer := mail.NewSaleConfirmationMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	processor := media.NewImageProcessor(cfg.PackageImageMaxDim)

	authService := service.NewAuthService(userRepo, roleRepo, sessionRepo, jwtManager, cfg.GoogleAudience)
	agencyService := service.NewAgencyService(agencyRepo)
	geographyService := service.NewGeographyService(countryRepo, cityRepo)
	providerService := service.NewProviderService(providerRepo)
	promotionService := service.NewPromotionService(promotionRepo, packageRepo)
	packageService := service.NewPackageService(packageRepo, storage, processor, service.PackageServiceConfig{
		Bucket:        cfg.MinIOBucketPackages,
		PublicBaseURL: cfg.MinIOPublicURL,
		MaxImageBytes: cfg.PackageImageMaxBytes,
		MaxDimension:  cfg.PackageImageMaxDim,
	})
	salesService := service.NewSalesService(saleRepo, paymentRepo, packageRepo, mailer)
	orderService := service.NewOrderService(orderRepo, saleRepo, providerRepo)
	reminderService := service.NewReminderService(reminderRepo)
	calendarService := service.NewCalendarService(saleRepo, reminderRepo)
	suggestService := service.NewSuggestService(directory, time.Duration(cfg.SuggestDebounceMS)*time.Millisecond, cfg.SuggestLimit)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterAgencies(e, authService, agencyService)
	transporthttp.RegisterGeography(e, authService, geographyService)
	transporthttp.RegisterProviders(e, authService, providerService)
	transporthttp.RegisterPromotions(e, authService, promotionService)
	transporthttp.RegisterPackages(e, authService, packageService)
	transporthttp.RegisterSales(e, authService, salesService)
	transporthttp.RegisterOrders(e, authService, orderService)
	transporthttp.RegisterReminders(e, authService, reminderService)
	transporthttp.RegisterCalendar(e, authService, calendarService)
	transporthttp.RegisterSuggest(e, authService, suggestService)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
