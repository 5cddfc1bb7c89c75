package main

import (
	"log"

	"github.com/SehaTech/auth_service/config"
	"github.com/SehaTech/auth_service/infra/queue"
	"github.com/SehaTech/auth_service/internal/services"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required")
	}

	smsSvc := services.NewSmsService(services.LogSender{})

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		smsSvc,
	)

	log.Printf("sms-worker consuming topic %q", cfg.KafkaTopic)
	consumer.Listen()
}
