package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/joripage/ordervalidation-dev/config"
	postgres_wrapper "github.com/joripage/ordervalidation-dev/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/ordervalidation-dev/pkg/infra/redis"
	kafkawrapper "github.com/joripage/ordervalidation-dev/pkg/kafka_wrapper"
	"github.com/joripage/ordervalidation-dev/pkg/logging"
	"github.com/joripage/ordervalidation-dev/pkg/restriction"
	"github.com/joripage/ordervalidation-dev/pkg/restriction/repo"
	"github.com/joripage/ordervalidation-dev/pkg/validation"
	"github.com/joripage/ordervalidation-dev/pkg/validation/audit"
	fixgateway "github.com/joripage/ordervalidation-dev/pkg/validation/fix"
	"github.com/joripage/ordervalidation-dev/pkg/validation/model"
)

type staticAccounts struct {
	byID map[string]model.StaticAccount
}

func (d staticAccounts) Account(accountID string) model.AccountContent {
	if a, ok := d.byID[accountID]; ok {
		return a
	}
	return model.StaticAccount{ID: accountID}
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logging.InitGlobal(logging.INFO)

	go func() {
		http.ListenAndServe("localhost:6060", nil)
	}()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// init db
	db := postgres_wrapper.InitPostgresWithBackoff(cfg.ValidationDB)
	sqlRepo := repo.NewRepo(db)

	// restriction snapshot provider
	var providerOpts []restriction.ProviderOption
	vcfg := cfg.Validation
	if vcfg == nil {
		vcfg = &config.ValidationConfig{}
	}
	if vcfg.RefreshIntervalSeconds > 0 {
		providerOpts = append(providerOpts,
			restriction.WithRefreshInterval(time.Duration(vcfg.RefreshIntervalSeconds)*time.Second))
	}
	if cfg.Redis != nil {
		redisClient, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Warnf("init redis fail with err: %v", err)
		} else {
			cacheKey := vcfg.SnapshotCacheKey
			if cacheKey == "" {
				cacheKey = "validation:restriction_snapshot"
			}
			providerOpts = append(providerOpts,
				restriction.WithSnapshotCache(redisClient, cacheKey,
					time.Duration(vcfg.SnapshotCacheTTLSeconds)*time.Second))
		}
	}
	provider := restriction.NewProvider(sqlRepo.Restriction(), providerOpts...)
	if err := provider.Start(ctx); err != nil {
		zap.S().Errorf("start restriction provider fail with err: %v", err)
		panic(err)
	}

	// violation audit feed
	var producer *kafkawrapper.Producer
	auditTopic := ""
	if cfg.Kafka != nil {
		producer = kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{Brokers: cfg.Kafka.Brokers})
		auditTopic = cfg.Kafka.AuditTopic
	}
	feed := audit.NewFeed(producer, auditTopic, vcfg.HistoryLimit)

	engine := validation.NewEngine(
		validation.WithNotifier(feed),
		validation.WithLegEquality(validation.LegEquality(vcfg.LegEquality)),
	)

	accounts := staticAccounts{byID: map[string]model.StaticAccount{}}
	for _, a := range vcfg.Accounts {
		accounts.byID[a.ID] = model.StaticAccount{ID: a.ID, CountryCode: a.Country}
	}

	fixGateway := fixgateway.NewFixGateway(&fixgateway.FixGatewayConfig{
		ConfigFilepath: cfg.Fix.ConfigFilepath,
	}, engine, provider, accounts)
	if err := fixGateway.Start(ctx); err != nil {
		panic(err)
	}
	fmt.Println("Order validation gateway started. Press Ctrl+C to exit.")

	<-sigs
	fmt.Println("Shutting down...")

	fixGateway.Stop()
	provider.Stop()
	if producer != nil {
		producer.Close()
	}
	cancel()

	fmt.Println("Exited cleanly.")
}
