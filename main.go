package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	youtubeclient "youtube-manager/infrastructure/clients/youtube"
	"youtube-manager/infrastructure/configuration"
	"youtube-manager/infrastructure/credential"
	"youtube-manager/infrastructure/logger"
	"youtube-manager/infrastructure/pubsub"
	"youtube-manager/infrastructure/servicebus"
	httpHandler "youtube-manager/interfaces/http"
	"youtube-manager/server"
	"youtube-manager/usecase"

	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
		os.Exit(3)
	}
}

func main() {
	defer recoverPanic()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

func run(ctx context.Context) error {
	// Load env from files (non-destructive; OS env still has precedence)
	if err := configuration.LoadEnvFiles(); err != nil {
		return err
	}
	cfg, err := configuration.Load()
	if err != nil {
		return err
	}
	logger.Configure(cfg.Logger.Format)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.YouTube.VideoID == "" {
		logger.GetLogger().Warn("YOUTUBE_VIDEO_ID_TO_MANAGE is not set; video routes will answer with a configuration error")
	}

	store := credential.NewStore(credential.Config{
		ClientID:     cfg.YouTube.ClientID,
		ClientSecret: cfg.YouTube.ClientSecret,
		RedirectURL:  cfg.YouTube.RedirectURI,
	})
	gate := credential.NewGate(store)

	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, store)
	if err != nil {
		return err
	}
	videoUseCase := usecase.NewVideoUseCase(gate, youtubeClient, cfg.YouTube.VideoID)

	if cfg.PubsubEnabled() {
		client, err := pubsub.NewPubSub(ctx, cfg.Pubsub.ProjectID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - continuing without update events")
		} else {
			publisher := pubsub.NewVideoEventPublisher(client, cfg.Pubsub.Topic)
			defer func() {
				if err := publisher.Close(); err != nil {
					logger.GetLogger().WithField("error", err).Warn("Error while closing Pub/Sub publisher")
				}
			}()
			videoUseCase = videoUseCase.WithPublisher(publisher)
			logger.GetLogger().WithFields(map[string]interface{}{
				"projectId": cfg.Pubsub.ProjectID,
				"topic":     cfg.Pubsub.Topic,
			}).Info("Publishing video update events")
		}
	}

	if cfg.ServiceBusEnabled() {
		queue, err := newServiceBusQueue(cfg.ServiceBus)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without Service Bus features")
		} else {
			defer func() {
				if err := queue.Close(context.Background()); err != nil {
					logger.GetLogger().WithField("error", err).Warn("Error while closing sender.")
				}
			}()
			videoUseCase = videoUseCase.WithPublisher(queue)
			logger.GetLogger().WithField("queue", cfg.ServiceBus.Queue).Info("Sending video update events to Service Bus")
		}
	}

	router := server.InitiateRouter(
		httpHandler.NewHealthHandler(),
		httpHandler.NewYouTubeAuthHandler(store),
		httpHandler.NewYouTubeHandler(videoUseCase),
		gate,
		cfg.App.AllowedOrigins,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.GetLogger().WithFields(map[string]interface{}{
			"port":    cfg.App.Port,
			"videoId": cfg.YouTube.VideoID,
		}).Info("Starting application")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newServiceBusQueue(cfg configuration.ServiceBus) (*servicebus.VideoEventQueue, error) {
	client, err := servicebus.NewServiceBus(cfg.Namespace)
	if err != nil {
		return nil, err
	}
	return servicebus.NewVideoEventQueue(client, cfg.Queue)
}
