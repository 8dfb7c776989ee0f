package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/db"
	"github.com/taskdeck/taskdeck/internal/event"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/service"
)

type App struct {
	Cfg                  *config.Config
	DB                   *sqlx.DB
	AuthService          *service.AuthService
	UserService          *service.UserService
	EmailService         *service.EmailService
	CardService          *service.CardService
	ChecklistService     *service.ChecklistService
	ChecklistItemService *service.ChecklistItemService
	BlogService          *service.BlogService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	cardRepository := repository.NewCardRepository(database)
	tagRepository := repository.NewTagRepository(database)
	checklistRepository := repository.NewChecklistRepository(database)
	checklistItemRepository := repository.NewChecklistItemRepository(database)
	postRepository := repository.NewPostRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.IsDevelopment(),
	)

	// The registration mailer listens for UserRegistered and sends the
	// verification link.
	dispatcher := event.NewDispatcher()
	mailer := service.NewRegistrationMailer(emailService, cfg.AppURL, cfg.AppName)
	dispatcher.SubscribeUserRegistered(mailer.HandleUserRegistered)

	authService := service.NewAuthService(
		database,
		userRepository,
		tokenRepository,
		dispatcher,
		cfg.TokenEmailVerifyExpiry,
	)
	userService := service.NewUserService(userRepository)
	cardService := service.NewCardService(
		database,
		cardRepository,
		tagRepository,
		checklistRepository,
		checklistItemRepository,
	)
	checklistService := service.NewChecklistService(
		checklistRepository,
		checklistItemRepository,
		cardRepository,
	)
	checklistItemService := service.NewChecklistItemService(
		checklistItemRepository,
		checklistRepository,
	)
	blogService := service.NewBlogService(postRepository)

	return &App{
		Cfg:                  cfg,
		DB:                   database,
		AuthService:          authService,
		UserService:          userService,
		EmailService:         emailService,
		CardService:          cardService,
		ChecklistService:     checklistService,
		ChecklistItemService: checklistItemService,
		BlogService:          blogService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
