package main

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/joripage/ordervalidation-dev/config"
	postgres_wrapper "github.com/joripage/ordervalidation-dev/pkg/infra/postgres"
	kafkawrapper "github.com/joripage/ordervalidation-dev/pkg/kafka_wrapper"
	"github.com/joripage/ordervalidation-dev/pkg/logging"
	"github.com/joripage/ordervalidation-dev/pkg/restriction/repo"
	"github.com/joripage/ordervalidation-dev/pkg/worker"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logging.InitGlobal(logging.INFO)

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx := context.Background()

	// init db
	db, err := postgres_wrapper.InitPostgres(cfg.ValidationDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	// init repo
	sqlRepo := repo.NewRepo(db)

	// consume the violation audit topic
	cg := kafkawrapper.NewConsumerGroup(kafkawrapper.ConsumerConfig{
		Brokers:  cfg.Kafka.Brokers,
		GroupID:  cfg.Kafka.AuditGroupID,
		Topic:    cfg.Kafka.AuditTopic,
		DLQTopic: cfg.Kafka.AuditDLQTopic,
	})
	defer cg.Close()

	w := worker.NewWorker(sqlRepo)
	if err := w.StartConsumer(ctx, cg); err != nil {
		zap.S().Errorf("consumer stopped with err: %v", err)
	}
}
