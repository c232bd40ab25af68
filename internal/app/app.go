// Package app wires the adapters and the core service together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/shopsmart/substitution/config"
	"github.com/shopsmart/substitution/internal/adapter/httphandler"
	"github.com/shopsmart/substitution/internal/adapter/kafka"
	"github.com/shopsmart/substitution/internal/adapter/storage"
	"github.com/shopsmart/substitution/internal/core/service"
	"github.com/shopsmart/substitution/internal/core/substitute"
	"github.com/shopsmart/substitution/pkg/retry"
	"github.com/shopsmart/substitution/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	product schema.Serde
	recall  schema.Serde
}

type producers struct {
	products kafka.ProductsProducer
	recall   kafka.RecallProducer
}

type processors struct {
	recallRule *kafka.RecallRuleProcessor
	recallGate *kafka.RecallGateProcessor
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	producers  producers
	processors processors
	consumer   kafka.SellableProductsConsumer
	sqldb      storage.SQLDB
	service    *service.Service
	httpServer httphandler.HTTPServer
	procWG     sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initStorage()
	app.initProducers()
	app.initCoreService()
	app.initProcessors()
	app.initConsumer()
	app.initHTTPServer()
	app.loadCatalog()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	productSS := app.cfg.Broker.Topics.ProductsStream + "-value"
	productSerde, err := schema.NewSerdeProductV1(
		ctx,
		schema.SubjectOpt(productSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	recallSS := app.cfg.Broker.Topics.RecallStream + "-value"
	recallSerde, err := schema.NewSerdeProductRecallV1(
		ctx,
		schema.SubjectOpt(recallSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.product = productSerde
	app.serdes.recall = recallSerde
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := retry.DoWithResult(app.ctx, retry.Config{
		MaxAttempts: 5,
		Backoff:     retry.ExponentialBackoff(500 * time.Millisecond),
	}, func() (storage.SQLDB, error) {
		return storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initProducers() {
	const op = "App.initProducers"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	productsTopic := app.cfg.Broker.Topics.ProductsStream
	recallTopic := app.cfg.Broker.Topics.RecallStream

	productsProducer, err := kafka.NewProductsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, productsTopic),
		kafka.ProducerEncoderOpt(app.serdes.product),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	recallProducer, err := kafka.NewRecallProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, recallTopic),
		kafka.ProducerEncoderOpt(app.serdes.recall),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producers.products = productsProducer
	app.producers.recall = recallProducer
}

func (app *App) initCoreService() {
	engine := substitute.NewEngine(
		substitute.WithMaxResults(app.cfg.Search.MaxResults),
	)
	repo := storage.NewCatalogRepository(app.sqldb)

	app.service = service.New(
		engine,
		app.producers.products,
		app.producers.recall,
		repo,
	)
}

func (app *App) initProcessors() {
	const op = "App.initProcessors"

	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics

	recallRuleProc, err := kafka.NewRecallRuleProc(
		seedBrokers,
		topics.RecallStream,
		topics.RecallGroupTable,
		app.serdes.recall,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	recallGateProc, err := kafka.NewRecallGateProc(
		seedBrokers,
		topics.ProductsStream,
		topics.RecallGroupTable,
		topics.SellableProducts,
		app.serdes.product,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.processors.recallRule = recallRuleProc
	app.processors.recallGate = recallGateProc
}

func (app *App) initConsumer() {
	const op = "App.initConsumer"

	consumer, err := kafka.NewSellableProductsConsumer(
		kafka.ConsumerClientOpt(
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.SellableProducts,
			app.cfg.Broker.Consumers.CatalogSaverGroup,
		),
		kafka.ConsumerDecoderOpt(app.serdes.product),
		kafka.ConsumerSaverOpt(app.service),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.consumer = consumer
}

func (app *App) initHTTPServer() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterSubstitutions(mux, app.service)
	httphandler.RegisterProducts(mux, app.service, app.service)
	httphandler.RegisterRecalls(mux, app.service)
	httphandler.RegisterHealth(mux)

	handler := httphandler.LogRequest(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

// loadCatalog builds the first snapshot. An empty database yields an empty
// catalog, which is a valid snapshot.
func (app *App) loadCatalog() {
	const op = "App.loadCatalog"

	err := retry.Do(app.ctx, retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(500 * time.Millisecond),
	}, func() error {
		return app.service.Reload(app.ctx)
	})
	if err != nil {
		app.fallDown(op, err)
	}
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.procWG.Add(2)
	go app.processors.recallRule.Run(app.ctx, stopFn, &app.procWG)
	go app.processors.recallGate.Run(app.ctx, stopFn, &app.procWG)
	app.procWG.Wait()

	go app.consumer.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.consumer.Close()
	app.processors.recallGate.Close()
	app.processors.recallRule.Close()
	app.producers.products.Close()
	app.producers.recall.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
