package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gearmatch/internal/app"
	"gearmatch/internal/config"
	"gearmatch/internal/domain"
	"gearmatch/internal/infra/memory"
	pgloader "gearmatch/internal/infra/postgres"
	redisinfra "gearmatch/internal/infra/redis"
	"gearmatch/internal/recommend"
	transport "gearmatch/internal/transport/http"
	"gearmatch/internal/worker"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the advisor server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(sampleCatalogs())
	if pool != nil {
		loader = pgloader.NewCatalogLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalogs app.CatalogRepository
	if redisClient != nil {
		catalogs = redisinfra.NewCatalogRepository(redisClient, loader, catalogTTL)
	} else {
		catalogs = memory.NewCatalogRepository(loader, catalogTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}

	var prefs app.PrefsStore
	if redisClient != nil {
		prefs = redisinfra.NewPrefsStore(redisClient)
	} else {
		prefs = memory.NewPrefsStore()
	}

	opts := recommend.Options{
		MinScore:      cfg.Recommend.MinScore,
		TopPickCount:  cfg.Recommend.TopPickCount,
		FallbackCount: cfg.Recommend.FallbackCount,
	}

	var scorer app.Scorer
	var dispatcher *worker.Dispatcher
	if cfg.Recommend.UseWorker {
		dispatcher = worker.NewDispatcher(catalogs)
		scorer = dispatcher
	}

	var candidate app.CandidateFilter
	if cfg.Recommend.RemoteFilter.Enabled && cfg.Recommend.RemoteFilter.URL != "" {
		candidate = transport.NewRemoteFilterClient(cfg.Recommend.RemoteFilter.URL)
	}

	service := app.NewAdvisorService(store, catalogs, prefs, scorer, candidate, opts, app.RefitPolicy(cfg.Prefs.Refit))
	wsHandler := transport.NewWSHandler(service)
	filterHandler := transport.NewFilterHandler(catalogs)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.Handle("/api/products/filter", filterHandler)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting advisor server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	if dispatcher != nil {
		dispatcher.Terminate()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleCatalogs provides a minimal demo catalog; swap the loader with the
// Postgres-backed one in production.
func sampleCatalogs() map[domain.Category][]domain.Product {
	return map[domain.Category][]domain.Product{
		domain.CategoryMouse: {
			{
				ID: "m-swift-pro", Category: domain.CategoryMouse, Name: "Swift Pro Wireless",
				Attrs: map[string]any{
					"wireless": true, "handedness": "ambi", "weight_grams": 63.0,
					"dpi": 26000.0, "grip_styles": []string{"claw", "fingertip"},
					"features": []string{"rgb", "onboard_memory"}, "price_tier": "upper_midrange",
				},
				PriceRange: [2]float64{120, 150},
			},
			{
				ID: "m-ergo-left", Category: domain.CategoryMouse, Name: "ErgoLeft 2",
				Attrs: map[string]any{
					"wireless": false, "handedness": "ergo_left", "weight_grams": 95.0,
					"dpi": 12000.0, "grip_styles": []string{"palm"}, "price_tier": "midrange",
				},
				PriceRange: [2]float64{70, 90},
			},
			{
				ID: "m-office-basic", Category: domain.CategoryMouse, Name: "Office Basic",
				Attrs: map[string]any{
					"wireless": true, "handedness": "ambi", "weight_grams": 88.0,
					"grip_styles": []string{"palm", "claw"}, "price_tier": "budget",
				},
				PriceRange: [2]float64{15, 25},
			},
		},
		domain.CategoryAudio: {
			{
				ID: "a-studio-anc", Category: domain.CategoryAudio, Name: "Studio ANC",
				Attrs: map[string]any{
					"wireless": true, "microphone": true, "mic_type": "builtin",
					"anc": true, "surround": false, "form_factor": "headset", "price_tier": "premium",
				},
				PriceRange: [2]float64{280, 350},
			},
			{
				ID: "a-game-boom", Category: domain.CategoryAudio, Name: "GameComm Boom",
				Attrs: map[string]any{
					"wireless": false, "microphone": true, "mic_type": "boom",
					"anc": false, "surround": true, "form_factor": "headset", "price_tier": "midrange",
				},
				PriceRange: [2]float64{90, 120},
			},
			{
				ID: "a-buds-lite", Category: domain.CategoryAudio, Name: "Buds Lite",
				Attrs: map[string]any{
					"wireless": true, "microphone": false,
					"anc": false, "form_factor": "earbuds", "price_tier": "budget",
				},
				PriceRange: [2]float64{25, 40},
			},
		},
		domain.CategoryKeyboard: {
			{
				ID: "k-tkl-hotswap", Category: domain.CategoryKeyboard, Name: "TKL Hotswap 87",
				Attrs: map[string]any{
					"wireless": false, "layout": "tkl", "switch_type": "tactile",
					"switch_options": []string{"linear", "tactile", "clicky"},
					"features":       []string{"hotswap", "rgb"}, "polling_hz": 1000.0, "price_tier": "midrange",
				},
				PriceRange: [2]float64{100, 130},
			},
			{
				ID: "k-silent-office", Category: domain.CategoryKeyboard, Name: "Silent Office Slim",
				Attrs: map[string]any{
					"wireless": true, "layout": "full", "switch_type": "linear",
					"dampened": true, "price_tier": "lower_midrange",
				},
				PriceRange: [2]float64{55, 70},
			},
		},
		domain.CategoryMonitor: {
			{
				ID: "mon-1440-165", Category: domain.CategoryMonitor, Name: "Arc 27 QHD",
				Attrs: map[string]any{
					"resolution": "1440p", "size_class": "27", "refresh_hz": 165.0,
					"panel": "ips", "hdr": true, "price_tier": "upper_midrange",
				},
				PriceRange: [2]float64{250, 320},
			},
			{
				ID: "mon-4k-60", Category: domain.CategoryMonitor, Name: "Studio 32 UHD",
				Attrs: map[string]any{
					"resolution": "4k", "size_class": "32", "refresh_hz": 60.0,
					"panel": "ips", "hdr": true, "price_tier": "premium",
				},
				PriceRange: [2]float64{400, 500},
			},
			{
				ID: "mon-uw-144", Category: domain.CategoryMonitor, Name: "Curve 34 Ultrawide",
				Attrs: map[string]any{
					"resolution": "1440p", "size_class": "ultrawide", "refresh_hz": 144.0,
					"panel": "va", "hdr": false, "price_tier": "upper_midrange",
				},
				PriceRange: [2]float64{320, 380},
			},
		},
	}
}
