// This program performs administrative tasks for the partner portal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jcpaschoal/partner-portal/app/sdk/auth"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus"
	"github.com/jcpaschoal/partner-portal/business/domain/brandingbus/stores/brandingdb"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/business/domain/offerbus/stores/offerdb"
	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus"
	"github.com/jcpaschoal/partner-portal/business/domain/paymentbus/stores/paymentdb"
	"github.com/jcpaschoal/partner-portal/business/domain/statusbus"
	"github.com/jcpaschoal/partner-portal/business/sdk/migrate"
	"github.com/jcpaschoal/partner-portal/business/sdk/sqldb"
	"github.com/jcpaschoal/partner-portal/business/types/role"
	"github.com/jcpaschoal/partner-portal/foundation/keystore"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
)

// Config replicates the settings the admin commands share with the service.
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"portal"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		KeysFolder string        `envconfig:"AUTH_KEYS_FOLDER" default:"foundation/zarf/keys"`
		Issuer     string        `envconfig:"AUTH_ISSUER" default:"partner-portal"`
		TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"8h"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "admin", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, gen-token, status")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		return withDB(cfg, func(db *sqlx.DB) error {
			return runMigrate(ctx, log, db)
		})
	case "gen-token":
		return runGenToken(log, cfg, os.Args[2:])
	case "status":
		return withDB(cfg, func(db *sqlx.DB) error {
			return runStatus(ctx, log, db)
		})
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func withDB(cfg Config, fn func(db *sqlx.DB) error) error {
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

	return fn(db)
}

func runMigrate(ctx context.Context, log *logger.Logger, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	if err := migrate.Migrate(ctx, log, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runGenToken(log *logger.Logger, cfg Config, args []string) error {
	cmd := flag.NewFlagSet("gen-token", flag.ExitOnError)
	kid := cmd.String("kid", "", "Key id of the private key to sign with (Required)")
	subject := cmd.String("subject", "", "Subject the token is issued to (Required)")
	roleStr := cmd.String("role", role.Partner.String(), "Role (PARTNER, CUSTOMER)")
	cmd.Parse(args)

	if *kid == "" || *subject == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	ath, err := auth.New(auth.Config{
		Log:       log,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	token, err := ath.GenerateToken(*kid, *subject, r)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Printf("issuer: %s\nrole: %s\n", ath.Issuer(), r)
	fmt.Printf("-----BEGIN TOKEN-----\n%s\n-----END TOKEN-----\n", token)
	return nil
}

func runStatus(ctx context.Context, log *logger.Logger, db *sqlx.DB) error {
	brandingBus := brandingbus.NewCore(log, brandingdb.NewStore(log, db, nil))
	offerBus := offerbus.NewCore(log, offerdb.NewStore(log, db), nil)
	paymentBus := paymentbus.NewCore(log, paymentdb.NewStore(log, db, nil))

	status, err := statusbus.NewCore(log, offerBus, brandingBus, paymentBus).Query(ctx)
	if err != nil {
		return fmt.Errorf("query status: %w", err)
	}

	fmt.Printf("offers configured:   %t\n", status.Offers)
	fmt.Printf("branding configured: %t\n", status.Branding)
	fmt.Printf("payment configured:  %t\n", status.Payment)
	return nil
}
