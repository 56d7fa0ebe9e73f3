package main

import (
	"context"
	"flag"
	"os"

	"taxifleet/config"
	"taxifleet/pkg/forms"
	"taxifleet/pkg/logger"
	"taxifleet/pkg/models"
	"taxifleet/pkg/password"
	"taxifleet/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	username := flag.String("username", os.Getenv("SUPERUSER_USERNAME"), "login name")
	raw := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "password")
	email := flag.String("email", os.Getenv("SUPERUSER_EMAIL"), "email address")
	license := flag.String("license", os.Getenv("SUPERUSER_LICENSE"), "license number, e.g. ADM00001")
	flag.Parse()

	if *username == "" || *raw == "" {
		log.Error("username and password are required")
		os.Exit(2)
	}
	if !forms.ValidLicenseNumber(*license) {
		log.Error(forms.MsgLicenseNumber, logger.String("license", *license))
		os.Exit(2)
	}

	ctx := context.Background()
	pg, err := postgres.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pg.Close()

	hash, err := password.Hash(*raw)
	if err != nil {
		log.Error("failed to hash password", logger.Error(err))
		os.Exit(1)
	}

	d, err := pg.Driver().Create(ctx, &models.CreateDriver{
		Username:      *username,
		Password:      hash,
		Email:         *email,
		LicenseNumber: *license,
		IsStaff:       true,
		IsSuperuser:   true,
	})
	if err != nil {
		log.Error("failed to create superuser", logger.Error(err))
		os.Exit(1)
	}
	log.Info("superuser created", logger.Int64("id", d.ID), logger.String("username", d.Username))
}
