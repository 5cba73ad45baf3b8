package app

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/pizzaria/internal/health"
	"github.com/vladislavdragonenkov/pizzaria/internal/messaging/kafka"
)

var errKafkaUnavailable = errors.New("kafka producer is not connected")

func splitBrokers(brokers string) []string {
	var list []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			list = append(list, b)
		}
	}
	return list
}

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Возвращает nil, nil если brokers пустой; при ошибке сервис продолжает работу без событий.
func initKafkaProducer(brokers, topic string, logger *log.Entry) (*kafka.Producer, error) {
	brokerList := splitBrokers(brokers)
	if len(brokerList) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokerList, topic)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"brokers": brokerList,
		"topic":   topic,
	}).Info("kafka producer initialized")
	return producer, nil
}

// kafkaChecker сообщает, удалось ли подключиться к настроенным брокерам.
func kafkaChecker(producer *kafka.Producer) healthcheck.Checker {
	return healthcheck.NewSimpleChecker("kafka", func(context.Context) error {
		if producer == nil {
			return errKafkaUnavailable
		}
		return nil
	})
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
