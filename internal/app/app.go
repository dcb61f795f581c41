package app

import (
	"intranet/config"
	"intranet/internal/database"
	"intranet/internal/integrations"
	"intranet/internal/integrations/sendgridnotify"
	"intranet/internal/integrations/targetsolutions"
	"intranet/internal/logger"
	"intranet/internal/repositories"
	"intranet/internal/services"

	memberController "intranet/internal/controllers/members"
	trainingController "intranet/internal/controllers/training"
)

type App struct {
	Database database.DB
	Registry *integrations.Registry
	Config   config.Config

	// Services
	TrainingService *services.TrainingService

	// Repositories
	MemberRepo      repositories.MemberRepository
	RecordRepo      repositories.TrainingRecordRepository
	RequirementRepo repositories.TrainingRequirementRepository

	// Controllers
	MemberController   *memberController.MemberController
	TrainingController *trainingController.TrainingController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}
	logger.Init(config.Environment)

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	registry := integrations.NewRegistry(config)
	registerProviders(registry)

	// Initialize repositories
	memberRepo := repositories.NewMember(db)
	recordRepo := repositories.NewTrainingRecord(db)
	requirementRepo := repositories.NewTrainingRequirement(db)

	// Initialize services
	trainingService := services.NewTrainingService(registry, recordRepo, requirementRepo, memberRepo)

	// Initialize controllers
	memberController := memberController.New(memberRepo, config)
	trainingController := trainingController.New(trainingService, recordRepo, memberRepo, registry)

	app := &App{
		Database:           db,
		Registry:           registry,
		Config:             config,
		TrainingService:    trainingService,
		MemberRepo:         memberRepo,
		RecordRepo:         recordRepo,
		RequirementRepo:    requirementRepo,
		MemberController:   memberController,
		TrainingController: trainingController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

// registerProviders registers every known adapter class. Runs once at
// startup, before any provider lookup.
func registerProviders(registry *integrations.Registry) {
	registry.RegisterTrainingProvider(targetsolutions.ProviderName, targetsolutions.New)
	registry.RegisterNotificationProvider(sendgridnotify.ProviderName, sendgridnotify.New)
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config.AppName == "" {
		return log.ErrMsg("config is empty")
	}

	nilChecks := []any{
		a.Registry,
		a.TrainingService,
		a.MemberController,
		a.TrainingController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
