package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/campusboard/board-service/config"
	"github.com/campusboard/board-service/infra/queue"
	"github.com/campusboard/board-service/internal/mailer"
	"github.com/campusboard/board-service/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.S().Infow("mail worker starting",
		"broker", cfg.KafkaBroker,
		"topic", cfg.KafkaTopic,
		"group_id", cfg.KafkaGroupID,
	)

	mailService := mailer.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.VerifyBaseURL,
		cfg.ResetPasswordBaseURL,
	)

	handler := mailer.NewMailHandler(mailService)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.S().Info("mail worker listening for events")
	consumer.Listen(ctx)
}
