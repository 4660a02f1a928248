package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/hvacsite/internal/config"
	"github.com/ignatzorin/hvacsite/internal/db"
	"github.com/ignatzorin/hvacsite/internal/form"
	"github.com/ignatzorin/hvacsite/internal/goroutine"
	"github.com/ignatzorin/hvacsite/internal/hooks"
	httpHandlers "github.com/ignatzorin/hvacsite/internal/http/handlers"
	httpRouter "github.com/ignatzorin/hvacsite/internal/http/router"
	"github.com/ignatzorin/hvacsite/internal/jobs"
	"github.com/ignatzorin/hvacsite/internal/logger"
	"github.com/ignatzorin/hvacsite/internal/notify"
	"github.com/ignatzorin/hvacsite/internal/query"
	"github.com/ignatzorin/hvacsite/internal/repository"
	"github.com/ignatzorin/hvacsite/internal/service"
	"github.com/ignatzorin/hvacsite/internal/storage"
	"github.com/ignatzorin/hvacsite/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}
	mainLog := logger.Component("main")

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPoolOptions)
	if err != nil {
		mainLog.WithError(err).Fatal("ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		mainLog.WithError(err).Fatal("ошибка миграций")
	}

	files, err := newObjectStore(ctx, cfg)
	if err != nil {
		mainLog.WithError(err).Fatal("не удалось подготовить хранилище файлов")
	}

	// Кэш запросов живёт столько же, сколько процесс.
	queries := query.NewClient(query.Options{
		StaleTime:    cfg.QueryStaleTime,
		GCTime:       cfg.QueryGCTime,
		FetchTimeout: cfg.QueryFetchTimeout,
	})
	defer queries.Close()

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)

	// Новая заявка: сброс кэша заявок, лента администратора, письмо отделу продаж.
	events := notify.Fanout{hooks.NewInvalidator(queries), hub}
	if cfg.MailEnabled() {
		events = append(events, notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.SalesEmail))
	} else {
		mainLog.Info("SMTP не настроен, письма отделу продаж отключены")
	}

	// Адаптеры ресурсов.
	productService := service.NewProductService(repository.NewProductRepository(dbConn))
	categoryService := service.NewCategoryService(repository.NewCategoryRepository(dbConn))
	jobService := service.NewJobService(repository.NewJobRepository(dbConn))
	newsService := service.NewNewsService(repository.NewNewsRepository(dbConn))
	projectService := service.NewProjectService(repository.NewProjectRepository(dbConn))
	contactService := service.NewContactService(repository.NewContactMessageRepository(dbConn), events)
	quoteService := service.NewQuoteService(repository.NewQuoteRepository(dbConn), events)
	applicationService := service.NewApplicationService(repository.NewApplicationRepository(dbConn), files, events)

	// Запросы через кэш.
	products := hooks.NewProducts(queries, productService)
	categories := hooks.NewCategories(queries, categoryService)
	jobHooks := hooks.NewJobs(queries, jobService)
	news := hooks.NewNews(queries, newsService)
	projects := hooks.NewProjects(queries, projectService)
	submissions := hooks.NewSubmissions(queries, contactService, quoteService, applicationService)

	forms := form.NewRegistry(cfg.FormSessionTTL)
	httpHandlers.RegisterForms(forms, submissions)

	// Фоновые задачи.
	scheduler := jobs.NewScheduler()
	if err := scheduler.AddSweep("@every 1m", "query-cache", queries); err != nil {
		mainLog.WithError(err).Fatal("ошибка планировщика")
	}
	if err := scheduler.AddSweep("@every 5m", "form-sessions", forms); err != nil {
		mainLog.WithError(err).Fatal("ошибка планировщика")
	}
	scheduler.Start()
	defer scheduler.Stop()

	tokens := service.NewTokenVerifier(cfg.JWTSecret)
	sessionStore := httpHandlers.NewFormSessionStore(cfg.SessionSecret, cfg.FormSessionTTL, cfg.Env == "production")

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Health:      httpHandlers.NewHealthHandler(dbConn),
		Home:        httpHandlers.NewHomeHandler(products, categories, news, jobHooks),
		Catalog:     httpHandlers.NewCatalogHandler(products, categories),
		Content:     httpHandlers.NewContentHandler(jobHooks, news, projects),
		Contact:     httpHandlers.NewContactHandler(contactService),
		Quote:       httpHandlers.NewQuoteHandler(quoteService),
		Application: httpHandlers.NewApplicationHandler(applicationService, cfg.MaxUploadSizeMB),
		Forms:       httpHandlers.NewFormHandler(forms, sessionStore),
		Admin:       httpHandlers.NewAdminHandler(submissions, contactService),
		WS:          httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
	}, tokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLog.WithError(err).Error("ошибка остановки http сервера")
		}
	}()

	mainLog.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLog.WithError(err).Error("сервер завершился с ошибкой")
	}
}

// newObjectStore выбирает хранилище резюме по STORAGE_DRIVER.
func newObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	if cfg.StorageDriver == config.StorageDriverS3 {
		return storage.NewS3Storage(ctx, cfg.S3Bucket, cfg.S3Endpoint, cfg.StoragePublicURL)
	}
	return storage.NewLocalStorage(cfg.MediaStoragePath, cfg.StoragePublicURL, cfg.MaxUploadSizeMB)
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
