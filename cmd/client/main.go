// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package main

import (
	"fmt"

	"github.com/pivault/pivault/internal/adapter"
	"github.com/pivault/pivault/internal/client"
	"github.com/pivault/pivault/internal/clipboard"
	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/keychain"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/session"
	"github.com/pivault/pivault/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("pivault-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	kc := keychain.NewKeyChain()
	sess := session.NewSession(kc, log)
	guard := clipboard.NewGuard(log)

	services := service.NewClientServices(serverAdapter, kc, sess, log)

	ui, err := tui.New(services, sess, guard, cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, sess, ui, cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
