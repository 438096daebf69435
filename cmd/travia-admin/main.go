package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travia-admin/internal/config"
	"travia-admin/internal/database"
	httpapi "travia-admin/internal/http"
	"travia-admin/internal/logger"
	"travia-admin/internal/notify"
	"travia-admin/internal/repository"
	"travia-admin/internal/service"
	"travia-admin/internal/session"
	"travia-admin/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "travia-admin")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	kv := store.NewRedisKV(redisClient)

	sessions := session.NewStore(kv, cfg.Auth.SessionTTL, cfg.Auth.JWTSecret, log)

	agenciesRepo := repository.NewPostgresAgenciesRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)
	categoriesRepo := repository.NewPostgresCategoriesRepository(db)
	experiencesRepo := repository.NewPostgresExperiencesRepository(db)
	guidesRepo := repository.NewPostgresGuidesRepository(db)
	tripsRepo := repository.NewPostgresTripsRepository(db)
	meetingPointsRepo := repository.NewPostgresMeetingPointsRepository(db)
	notificationsRepo := repository.NewPostgresNotificationsRepository(db)
	dashboardRepo := repository.NewPostgresDashboardRepository(db)

	authService := service.NewAuthService(sessions, agenciesRepo, cfg.Auth, log)
	routeService := service.NewRouteService(tripsRepo, meetingPointsRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	hub := notify.NewHub()
	pusher := notify.NewPusher(cfg.Push, kv, log)
	listener := notify.NewListener(cfg.Database.DSN(), hub, pusher, log)

	guard := httpapi.NewGuard(sessions, log)
	router := httpapi.NewRouter(guard, log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, guard, log))
	router.RegisterAgencyAdminRoutes(httpapi.NewAgenciesHandler(agenciesRepo, log))
	router.RegisterUserRoutes(httpapi.NewUsersHandler(usersRepo, log))
	router.RegisterCategoryRoutes(httpapi.NewCategoriesHandler(categoriesRepo, log))
	router.RegisterExperienceRoutes(httpapi.NewExperiencesHandler(experiencesRepo, log))
	router.RegisterGuideRoutes(httpapi.NewGuidesHandler(guidesRepo, log))
	router.RegisterTripRoutes(httpapi.NewTripsHandler(tripsRepo, routeService, log))
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(dashboardService, log))
	router.RegisterNotifyRoutes(httpapi.NewNotificationsHandler(notificationsRepo, hub, pusher, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("Notification listener stopped", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// stores are reachable at this point; protected routes may answer
	guard.SetReady()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		log.Error("HTTP server exited", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}
