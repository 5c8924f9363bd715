package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"futarinavi/internal/articles"
	"futarinavi/internal/config"
	"futarinavi/internal/handlers"
	"futarinavi/internal/linkcheck"
	"futarinavi/internal/logger"
	"futarinavi/internal/metrics"
	"futarinavi/internal/middleware"
	"futarinavi/internal/reminder"
	sentryutil "futarinavi/internal/sentry"
	"futarinavi/internal/store"
	"futarinavi/internal/telegram"
)

func main() {
	// Load configuration from .env and environment variables
	config.Load()
	logger.SetLevel(config.Cfg.LogLevel)

	// Initialize Sentry (non-blocking if SENTRY_DSN is empty)
	sentryutil.Init()
	defer sentryutil.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize persistent counter
	handlers.InitCounter()

	// Load procedure guides (embedded unless ARTICLES_DIR is set)
	if err := articles.Load(config.Cfg.ArticlesDir); err != nil {
		log.Printf("articles: %v", err)
	}

	plans, err := store.New(ctx, config.Cfg)
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"phase": "store-init"})
		log.Fatalf("store: %v", err)
	}
	handlers.SetStore(plans)
	handlers.SetMetrics(metrics.Default)

	limiter := handlers.NewRateLimiter(ctx, config.Cfg.RateLimitRPS, config.Cfg.RateLimitBurst)
	limiter.TrustProxy = config.Cfg.TrustProxy
	checker := linkcheck.NewChecker(config.Cfg.UserAgent, metrics.Default)

	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/timeline", handlers.TimelineHandler)
	mux.HandleFunc("/api/timeline/definitions", handlers.DefinitionsHandler)
	mux.HandleFunc("/api/timeline/calendar", handlers.CalendarHandler)
	mux.HandleFunc("/api/timeline/report", handlers.ReportHandler)
	mux.HandleFunc("/api/parse-certificate", handlers.ParseCertificateHandler)
	mux.HandleFunc("/api/simulate", handlers.SimulateHandler)
	mux.HandleFunc("/api/simulate/share", handlers.ShareHandler)
	mux.HandleFunc("/api/programs", handlers.ProgramsHandler)
	mux.HandleFunc("/api/programs/{slug}", handlers.ProgramDetailHandler)
	mux.HandleFunc("/api/articles", handlers.ArticlesAPIHandler)
	mux.HandleFunc("/api/plans", handlers.PlansHandler)
	mux.HandleFunc("/api/plans/{id}", handlers.PlanHandler)
	mux.HandleFunc("/api/plans/{id}/complete", handlers.PlanCompleteHandler)
	mux.HandleFunc("/api/stats", handlers.StatsHandler)
	mux.HandleFunc("/api/health", handlers.HealthHandler)

	// Admin routes (protected by ADMIN_API_KEY)
	mux.HandleFunc("/api/admin/links", checker.AdminHandler)

	// Pages
	mux.HandleFunc("/programs", handlers.ProgramListPageHandler)
	mux.HandleFunc("/programs/{slug}", handlers.ProgramPageHandler)
	mux.HandleFunc("/articles", handlers.ArticleListHandler)
	mux.HandleFunc("/articles/{slug}", handlers.ArticlePageHandler)

	// SEO routes
	mux.HandleFunc("/sitemap.xml", handlers.SitemapHandler)
	mux.HandleFunc("/robots.txt", handlers.RobotsTxtHandler)

	if config.Cfg.MetricsEnabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Block dotfile paths (.env, .git, etc.)
		if strings.Contains(r.URL.Path, "/.") {
			handlers.NotFoundHandler(w, r)
			return
		}
		handlers.IndexHandler(w, r)
	})

	// Wrap with middleware: Recovery → SecurityHeaders → Metrics → Gzip (if enabled) → Rate Limiter
	var handler http.Handler = limiter.Middleware(mux)
	if config.Cfg.GzipEnabled {
		handler = middleware.Gzip(handler)
	}
	handler = middleware.Metrics(metrics.Default)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Recovery(handler)

	// Link check at boot + periodic (respects config)
	if config.Cfg.LinkCheckEnabled {
		go func() {
			if !sleepCtx(ctx, config.Cfg.LinkCheckDelay) {
				return
			}
			if broken := checker.CheckAll(ctx, linkcheck.Targets()); broken > 0 {
				logger.Warn("link check: broken links found at boot", map[string]interface{}{"broken": broken})
			}

			ticker := time.NewTicker(config.Cfg.LinkCheckInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					checker.CheckAll(ctx, linkcheck.Targets())
				}
			}
		}()
	}

	// Daily reminder digests (off by default)
	if config.Cfg.ReminderEnabled {
		notifiers := reminder.MultiNotifier{reminder.LogNotifier{}}
		if config.Cfg.ReminderWebhookURL != "" {
			notifiers = append(notifiers, reminder.NewWebhookNotifier(config.Cfg.ReminderWebhookURL, config.Cfg.UserAgent))
		}
		if config.Cfg.TelegramBotToken != "" && config.Cfg.TelegramChatID != "" {
			notifiers = append(notifiers, reminder.TelegramNotifier{
				Bot: telegram.NewBot(config.Cfg.TelegramBotToken, config.Cfg.TelegramChatID),
			})
		}
		job := &reminder.Job{
			Store:    plans,
			Notifier: notifiers,
			Location: config.Location(),
			Metrics:  metrics.Default,
		}
		job.Start(ctx, config.Cfg.ReminderHour, 30*time.Second)
		logger.Info("reminder: scheduled", map[string]interface{}{"hour": config.Cfg.ReminderHour, "notifiers": len(notifiers)})
	}

	srv := &http.Server{
		Addr:              ":" + config.Cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", map[string]interface{}{"port": config.Cfg.Port, "store": config.Cfg.StoreBackend})
		fmt.Printf("FutariNavi running on http://localhost:%s\n", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentryutil.CaptureError(err, map[string]string{"phase": "listen"})
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("server shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	handlers.FlushCounter()
	if c, ok := plans.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("store close failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
