package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-server/notification-service/internal/config"
	"community-server/notification-service/internal/messaging"
	"community-server/notification-service/internal/service"
	sharedLogger "community-server/shared/logger"
	"community-server/shared/mail"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.Log.Level,
		Encoding: sharedLogger.EncodingForEnv(cfg.Log.Env),
	})
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	rabbitConn, err := connectRabbitMQ(cfg.RabbitMQ.URI, logger)
	if err != nil {
		sugar.Fatalf("Не удалось подключиться к RabbitMQ: %v", err)
	}
	defer rabbitConn.Close()

	smtpSender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, logger)
	mailService := service.NewMailService(smtpSender, logger)

	processor := messaging.NewProcessor(logger, mailService)
	consumer := messaging.NewConsumer(rabbitConn, logger, cfg.MailQueueName, cfg.WorkerConcurrency, processor)

	healthSrv := startHealthCheckServer(cfg.HealthCheckPort, logger)

	consumerErrChan := make(chan error, 1)
	go func() {
		err := consumer.Start()
		if err != nil {
			sugar.Errorf("Консьюмер RabbitMQ завершился с ошибкой: %v", err)
		}
		consumerErrChan <- err
	}()

	sugar.Infow("Mail worker started", "queue", cfg.MailQueueName, "smtp_host", cfg.SMTP.Host)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	consumerDone := false
	select {
	case <-quit:
		sugar.Info("Получен сигнал завершения, начинаем остановку...")
	case err := <-consumerErrChan:
		consumerDone = true
		sugar.Errorw("Consumer stopped, shutting down", "error", err)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := healthSrv.Shutdown(ctxShutdown); err != nil {
		sugar.Errorf("Ошибка при остановке Health Check сервера: %v", err)
	}

	consumer.Stop()
	if !consumerDone {
		<-consumerErrChan
	}
	sugar.Info("Mail worker stopped")
}

func startHealthCheckServer(port string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Запуск Health Check сервера", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Ошибка запуска Health Check сервера", zap.Error(err))
		}
	}()

	return srv
}

func connectRabbitMQ(uri string, logger *zap.Logger) (*amqp.Connection, error) {
	var connection *amqp.Connection
	var err error
	maxRetries := 50
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		connection, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Подключение к RabbitMQ успешно установлено")
			go func() {
				closeErr := <-connection.NotifyClose(make(chan *amqp.Error, 1))
				if closeErr != nil {
					logger.Error("Соединение с RabbitMQ разорвано", zap.Error(closeErr))
				}
			}()
			return connection, nil
		}
		logger.Warn("Не удалось подключиться к RabbitMQ, попытка переподключения...",
			zap.Error(err),
			zap.Int("retry", i+1),
			zap.Duration("delay", retryDelay),
		)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("не удалось подключиться к RabbitMQ после %d попыток: %w", maxRetries, err)
}
