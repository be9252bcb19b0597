package cli

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/justsurfingit/internship-finder/internal/config"
	"github.com/justsurfingit/internship-finder/internal/database"
	"github.com/justsurfingit/internship-finder/internal/gateway"
)

// app is the configuration plus the backend every command talks to.
type app struct {
	cfg     *config.Config
	db      *gorm.DB // nil for the supabase backend
	gateway gateway.Gateway
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &ExitError{Code: ExitConfig, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: ExitConfig, Err: fmt.Errorf("invalid config: %w", err)}
	}
	return cfg, nil
}

func openApp(opts *RootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	switch cfg.Gateway.Backend {
	case "supabase":
		g, err := gateway.NewSupabaseGateway(cfg.Gateway.SupabaseURL, cfg.Gateway.SupabaseKey, cfg.Gateway.AuthProvider)
		if err != nil {
			return nil, err
		}
		a.gateway = g
		log.Println("✅ Using Supabase backend")
	default:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.gateway = gateway.NewDatabaseGateway(db, cfg.Gateway.LoginURL)
	}
	return a, nil
}

func (a *app) Close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
