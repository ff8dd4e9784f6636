package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"

	"github.com/nsl-launcher/nsl-go/pkg/profile"
	"github.com/nsl-launcher/nsl-go/pkg/security"
	"github.com/nsl-launcher/nsl-go/pkg/server"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: %s configuration.json", os.Args[0])
	}

	conf, err := parse(os.Args[1])
	if err != nil {
		log.WithField("error", err).Fatal("Config error")
	}

	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		log.WithField("error", err).Fatal("Invalid log level")
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})

	log.WithField("project", conf.ProjectName).Info("Starting launch server daemon")

	// Setup security bridge
	var bridge security.Bridge = security.PassthroughBridge{}
	if conf.SecretKey != "" {
		aesBridge, err := security.NewAESBridge(conf.SecretKey)
		if err != nil {
			log.WithField("error", err).Fatal("Error initialising security bridge")
		}
		bridge = aesBridge
	}

	// Setup auth provider
	provider, err := conf.Auth.Provider()
	if err != nil {
		log.WithField("error", err).Fatal("Error initialising auth provider")
	}

	// Setup profile catalog
	err = profile.InitialiseCatalog(conf.ProfilesDir)
	if err != nil {
		log.WithField("error", err).Fatal("Error initialising profile catalog")
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		log.WithError(err).Fatal("Error initializing cron")
	}
	_, err = s.NewJob(
		gocron.DurationJob(
			conf.reloadInterval,
		),
		gocron.NewTask(
			func() {
				if err := profile.GetCatalogSingleton().Reload(); err != nil {
					log.WithError(err).Warn("Profile catalog reload finished with errors")
				}
			},
		),
	)
	if err != nil {
		log.WithError(err).Fatal("Error initializing catalog reload cronjob")
	}
	s.Start()
	defer func() { _ = s.Shutdown() }()

	launchServer := server.NewServer(server.Options{
		BindAddress: conf.BindAddress,
		StaticDir:   conf.StaticDir,
		Texture:     conf.Texture,
		Provider:    provider,
		Bridge:      bridge,
	})
	if err := launchServer.Start(); err != nil {
		log.WithField("error", err).Fatal("Error starting launch server")
	}
	defer launchServer.Shutdown()

	// wait for SIGINT or SIGTERM
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
