package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/glancery/glancery/internal/config"
	"github.com/glancery/glancery/internal/log"
	"github.com/glancery/glancery/internal/mail"
	"github.com/glancery/glancery/internal/queue"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := log.Init(cfg.Env == "prod")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	queueName := getenv("RABBIT_QUEUE", "glancery-notify")
	workers, _ := strconv.Atoi(getenv("RABBIT_CONCURRENCY", "4"))

	cons, err := queue.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, queueName, "#")
	if err != nil {
		logger.Fatal("rabbit consumer init", zap.Error(err))
	}
	defer cons.Close()

	var sender mail.Sender
	if addr := os.Getenv("SMTP_ADDR"); addr != "" {
		sender = &mail.SMTPSender{
			Addr: addr,
			From: getenv("SMTP_FROM", "hello@glancery.com"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
		}
	} else {
		logger.Warn("SMTP_ADDR not set, mail goes to the log")
		sender = &mail.LogSender{Log: logger}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("glancery notify up",
		zap.String("exchange", cfg.RabbitExchange),
		zap.String("queue", queueName),
		zap.Int("workers", workers))

	handle := func(key string, body []byte) error {
		switch key {
		case queue.KeyOTPRequested:
			var ev queue.OTPRequested
			if err := json.Unmarshal(body, &ev); err != nil {
				logger.Error("bad otp event, dropping", zap.Error(err))
				return nil // poison message, do not requeue
			}
			subj, msg := mail.OTPMessage(cfg.PublicBaseURL, ev.OTP, ev.MagicToken)
			return sender.Send(ev.Email, subj, msg)

		case queue.KeyUnlockRequested:
			var ev queue.UnlockRequested
			if err := json.Unmarshal(body, &ev); err != nil {
				logger.Error("bad unlock event, dropping", zap.Error(err))
				return nil
			}
			subj, msg := mail.UnlockMessage(cfg.PublicBaseURL, ev.Publication, ev.GCode, ev.Email, ev.QKey, ev.QText)
			return sender.Send(ev.Email, subj, msg)

		case queue.KeySubscriberJoined:
			var ev queue.SubscriberJoined
			if err := json.Unmarshal(body, &ev); err != nil {
				logger.Error("bad subscriber event, dropping", zap.Error(err))
				return nil
			}
			subj, msg := mail.SubscribedMessage(ev.Publication)
			return sender.Send(ev.Email, subj, msg)

		default:
			logger.Warn("unknown routing key, dropping", zap.String("key", key))
			return nil
		}
	}

	if err := cons.Consume(ctx, workers, handle); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
