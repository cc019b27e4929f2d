package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jcpaschoal/partner-portal/api/cmd/build/all"
	"github.com/jcpaschoal/partner-portal/app/sdk/auth"
	"github.com/jcpaschoal/partner-portal/app/sdk/mux"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus/stores/catalogapi"
	"github.com/jcpaschoal/partner-portal/business/sdk/sqldb"
	"github.com/jcpaschoal/partner-portal/foundation/blobstore"
	"github.com/jcpaschoal/partner-portal/foundation/keystore"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jcpaschoal/partner-portal/foundation/otel"
	"github.com/jcpaschoal/partner-portal/foundation/sealbox"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
)

var build = "develop"

// Config holds every setting the service reads from the environment.
type Config struct {
	Version struct {
		Build string `json:"build"`
		Desc  string `json:"desc"`
	} `json:"version"`

	Web struct {
		ReadTimeout        time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"5s"`
		WriteTimeout       time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"30s"`
		IdleTimeout        time.Duration `envconfig:"WEB_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout    time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"20s"`
		APIHost            string        `envconfig:"WEB_API_HOST" default:"0.0.0.0:3000"`
		DebugHost          string        `envconfig:"WEB_DEBUG_HOST" default:"0.0.0.0:3010"`
		CORSAllowedOrigins []string      `envconfig:"WEB_CORS_ALLOWED_ORIGINS" default:"*"`
	}
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"portal"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Tempo struct {
		Host        string  `envconfig:"TEMPO_HOST" default:"tempo:4317"`
		ServiceName string  `envconfig:"TEMPO_SERVICE_NAME" default:"PARTNER-PORTAL"`
		Probability float64 `envconfig:"TEMPO_PROBABILITY" default:"0.05"`
	}
	Auth struct {
		KeysFolder string        `envconfig:"AUTH_KEYS_FOLDER" default:"foundation/zarf/keys"`
		Issuer     string        `envconfig:"AUTH_ISSUER" default:"partner-portal"`
		TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"8h"`
	}
	Blob struct {
		Region        string `envconfig:"BLOB_REGION" default:"us-east-1"`
		Bucket        string `envconfig:"BLOB_BUCKET" default:"partner-portal-assets"`
		PublicBaseURL string `envconfig:"BLOB_PUBLIC_BASE_URL"`
	}
	Redis struct {
		Addr     string        `envconfig:"REDIS_ADDR"`
		Password string        `envconfig:"REDIS_PASSWORD"`
		DB       int           `envconfig:"REDIS_DB" default:"0"`
		TTL      time.Duration `envconfig:"REDIS_CATALOG_TTL" default:"15m"`
	}
	Catalog struct {
		BaseURL  string        `envconfig:"CATALOG_BASE_URL" default:"http://localhost:4000"`
		Country  string        `envconfig:"CATALOG_COUNTRY" default:"US"`
		Timeout  time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`
		CacheTTL time.Duration `envconfig:"CATALOG_OFFER_CACHE_TTL" default:"1m"`
	}
	Payment struct {
		SecretKey string `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	}
}

func main() {
	var log *logger.Logger

	events := logger.Events{
		Error: func(ctx context.Context, r logger.Record) {
			log.Info(ctx, "******* SEND ALERT *******")
		},
	}

	log = logger.NewWithEvents(os.Stdout, logger.LevelInfo, "PARTNER-PORTAL", otel.GetTraceID, events)

	// -------------------------------------------------------------------------

	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// -------------------------------------------------------------------------
	// Configuration

	var cfg Config

	cfg.Version.Build = build
	cfg.Version.Desc = "PARTNER-PORTAL"

	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	// -------------------------------------------------------------------------
	// App Starting

	log.Info(ctx, "starting service", "version", cfg.Version.Build)
	defer log.Info(ctx, "shutdown complete")

	log.Info(ctx, "startup", "config", sanitizeConfig(cfg))

	log.BuildInfo(ctx)

	expvar.NewString("build").Set(cfg.Version.Build)

	// -------------------------------------------------------------------------
	// Database Support

	log.Info(ctx, "startup", "status", "initializing database support", "hostport", cfg.DB.Host)

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}

	defer db.Close()

	// -------------------------------------------------------------------------
	// Auth Support

	log.Info(ctx, "startup", "status", "initializing authentication support")

	ks := keystore.New()

	n, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder))
	if err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	log.Info(ctx, "startup", "status", "keys loaded", "count", n)

	ath, err := auth.New(auth.Config{
		Log:       log,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	// -------------------------------------------------------------------------
	// Asset And Secret Support

	log.Info(ctx, "startup", "status", "initializing asset storage", "bucket", cfg.Blob.Bucket)

	blobs, err := blobstore.New(ctx, log, blobstore.Config{
		Region:        cfg.Blob.Region,
		Bucket:        cfg.Blob.Bucket,
		PublicBaseURL: cfg.Blob.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("constructing blob store: %w", err)
	}

	box, err := sealbox.NewFromBase64(cfg.Payment.SecretKey)
	if err != nil {
		return fmt.Errorf("constructing payment secret box: %w", err)
	}

	// -------------------------------------------------------------------------
	// Microsoft Catalog Support

	log.Info(ctx, "startup", "status", "initializing catalog support", "base", cfg.Catalog.BaseURL)

	catalog, err := catalogapi.New(log, catalogapi.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Country: cfg.Catalog.Country,
		Timeout: cfg.Catalog.Timeout,
	})
	if err != nil {
		return fmt.Errorf("constructing catalog client: %w", err)
	}

	var rdb redis.UniversalClient
	if cfg.Redis.Addr != "" {
		log.Info(ctx, "startup", "status", "initializing redis support", "addr", cfg.Redis.Addr)

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "startup", "status", "redis unreachable, catalog cache degraded", "err", err)
		}

		rdb = client
	}

	// -------------------------------------------------------------------------
	// Start Tracing Support

	log.Info(ctx, "startup", "status", "initializing tracing support")

	traceProvider, teardown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.Tempo.ServiceName,
		Host:        cfg.Tempo.Host,
		ExcludedRoutes: map[string]struct{}{
			"/v1/liveness":  {},
			"/v1/readiness": {},
		},
		Probability: cfg.Tempo.Probability,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}

	defer teardown(context.Background())

	tracer := traceProvider.Tracer(cfg.Tempo.ServiceName)

	// -------------------------------------------------------------------------
	// Start Debug Service

	go func() {
		log.Info(ctx, "startup", "status", "debug router started", "host", cfg.Web.DebugHost)

		if err := http.ListenAndServe(cfg.Web.DebugHost, http.DefaultServeMux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "msg", err)
		}
	}()

	// -------------------------------------------------------------------------
	// Start API Service

	log.Info(ctx, "startup", "status", "initializing V1 API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	cfgMux := mux.Config{
		Build:  cfg.Version.Build,
		Log:    log,
		DB:     db,
		Tracer: tracer,
		Stores: mux.StoreConfig{
			Uploader:        blobs,
			Sealer:          box,
			Redis:           rdb,
			Catalog:         catalog,
			OfferCacheTTL:   cfg.Catalog.CacheTTL,
			CatalogCacheTTL: cfg.Redis.TTL,
		},
		AuthConfig: mux.AuthConfig{
			Auth: ath,
		},
	}

	webAPI := mux.WebAPI(cfgMux,
		all.Routes(),
		mux.WithCORS(cfg.Web.CORSAllowedOrigins),
	)

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      webAPI,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     logger.NewStdLogger(log, logger.LevelError),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info(ctx, "startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func sanitizeConfig(cfg Config) string {
	cfg.DB.Password = "[MASKED]"
	cfg.Redis.Password = "[MASKED]"
	cfg.Payment.SecretKey = "[MASKED]"

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(data)
}
