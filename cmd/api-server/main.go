package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mealhub/internal/auth"
	"mealhub/internal/calendar"
	"mealhub/internal/inventory"
	"mealhub/internal/live"
	"mealhub/internal/schedule"
	"mealhub/pkg/database"
	"mealhub/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	srvCfg := utils.LoadServerConfig()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := live.NewHub()
	router.GET("/ws", live.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": stats.Clients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": stats.Clients,
		})
	})

	// Repos and services
	calRepo := calendar.NewRepo(db)
	calSvc := calendar.NewService(db)
	ledger := inventory.NewRepo(db)
	invSvc := inventory.NewService(ledger, calRepo)

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Device feed (public: the display has no token store)
	public := router.Group("/api")
	scheduleHandler := schedule.NewHandler(calRepo)
	scheduleHandler.RegisterRoutes(public)

	// Protected API
	protected := router.Group("/api")
	protected.Use(auth.AuthMiddleware(tokenSvc))

	invHandler := inventory.NewHandler(invSvc, hub)
	invHandler.RegisterRoutes(protected)

	calHandler := calendar.NewHandler(calRepo, calSvc, hub)
	calHandler.RegisterRoutes(protected)

	// Auto-reconciler: once at startup, then on a timer.
	reconciler := calendar.NewReconciler(calSvc, srvCfg.ReconcileInterval)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if n, err := reconciler.RunOnce(startupCtx, time.Now()); err != nil {
		log.Printf("startup reconcile failed: %v", err)
	} else if n > 0 {
		log.Printf("startup reconcile auto-consumed %d past meal(s)", n)
	}
	cancelStartup()

	reconcileCtx, stopReconciler := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reconciler.Start(reconcileCtx)
	}()

	httpSrv := &http.Server{
		Addr:    srvCfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", srvCfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down")
	stopReconciler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("server stopped")
}
