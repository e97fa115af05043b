//
// Articles
// ========
// A serverless article service: create an article, fetch one by id, and
// fetch a sample of up to 20 articles. Deployed behind API Gateway it runs
// as a Lambda function; with -local it serves the same routes over HTTP.
//
// Print the route docs:
// ---------------------
// $ go run . -routes
//
// Boot the local server:
// ----------------------
// $ ARTICLES_RECORD_STORE=sqlite go run . -local
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"title":"T","category":"C","abstract":"A","markdown":"# Hi"}' http://localhost:3333/article
// {"articleId":"0b6c5c1e-7f0e-4a57-9a64-9b4f0b1c2d3e"}
//
// $ curl 'http://localhost:3333/article?id=0b6c5c1e-7f0e-4a57-9a64-9b4f0b1c2d3e'
// {"id":"0b6c5c1e-...","title":"T","category":"C","abstract":"A","markdown":"# Hi","creationDate":"2026/10/18"}
//
// $ curl http://localhost:3333/article/random
// [{"id":"0b6c5c1e-...","title":"T",...}]
//
// $ curl http://localhost:3333/article/nope
// {"message":"Internal server error"}
//
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/config"
	"github.com/SergeyParamoshkin/articles/internal/contentstore"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/recordstore"
	"github.com/SergeyParamoshkin/articles/internal/router"
	"github.com/SergeyParamoshkin/articles/internal/server"
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config
	closers     []func() error
}

// nolint
func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	conf, err := config.Get()
	if err != nil {
		sugar.Fatalw("load configuration", "error", err)
	}

	var (
		local    = flag.Bool("local", false, "serve over HTTP instead of running as a Lambda function")
		routes   = flag.Bool("routes", false, "Generate router documentation")
		addr     = flag.String("addr", conf.HTTPAddress, "application port")
		diagPort = flag.String("diag_addr", conf.DiagAddress, "diag port")
	)

	flag.Parse()

	a := &App{
		sugarLogger: sugar,
		config:      conf,
	}
	defer a.Close()

	if *routes {
		// Route docs only need the route table, not live stores.
		d := router.NewDispatcher(router.Handlers{}, sugar)
		fmt.Println(docgen.MarkdownRoutesDoc(server.New(d, sugar).Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/articles",
			Intro:       "Routes served by the articles service.",
		}))

		return
	}

	ctx := context.Background()

	if *local {
		err = a.serveLocal(ctx, *addr, *diagPort)
	} else {
		err = a.serveLambda(ctx)
	}
	if err != nil {
		sugar.Errorw(err.Error())
		a.Close()
		os.Exit(1)
	}
}

func (a *App) serveLambda(ctx context.Context) error {
	rec, err := metrics.NewRecorder(otel.GetMeterProvider().Meter(metrics.ServiceName))
	if err != nil {
		return err
	}

	d, err := a.dispatcher(ctx, rec)
	if err != nil {
		return err
	}

	a.sugarLogger.Infow("starting lambda handler",
		"body_mode", a.config.BodyMode,
		"record_store", a.config.RecordStore,
		"table", a.config.Table,
	)
	lambda.Start(d.HandleAPIGateway)

	return nil
}

func (a *App) serveLocal(ctx context.Context, addr, diagAddr string) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	a.closers = append(a.closers, func() error { return provider.Shutdown(context.Background()) })

	rec, err := metrics.NewRecorder(provider.Meter(metrics.ServiceName))
	if err != nil {
		return err
	}

	d, err := a.dispatcher(ctx, rec)
	if err != nil {
		return err
	}

	diagRouter := chi.NewRouter()
	diagRouter.Handle("/metrics", promhttp.Handler())

	go func() {
		err := http.ListenAndServe(diagAddr, diagRouter)
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	}()

	a.sugarLogger.Infow("starting HTTP server", "address", addr, "diag_address", diagAddr)

	return http.ListenAndServe(addr, server.New(d, a.sugarLogger).Router())
}

func (a *App) dispatcher(ctx context.Context, rec *metrics.Recorder) (*router.Dispatcher, error) {
	records, err := a.recordStore(ctx)
	if err != nil {
		return nil, err
	}

	var opts []article.Option
	if a.config.BodyMode == model.BodyFile {
		objects, err := a.contentStore(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, article.WithContentStore(contentstore.New(objects)))
	}

	repo, err := article.NewRepository(records, a.config.BodyMode, opts...)
	if err != nil {
		return nil, err
	}

	return router.NewDispatcher(article.Handlers(repo), a.sugarLogger, router.WithMetrics(rec)), nil
}

func (a *App) recordStore(ctx context.Context) (recordstore.Store, error) {
	switch a.config.RecordStore {
	case config.RecordStoreDynamoDB:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		return recordstore.NewDynamoDB(dynamodb.NewFromConfig(cfg), a.config.Table), nil
	case config.RecordStoreSQLite:
		s, err := recordstore.OpenSQLite(a.config.SQLitePath, a.config.Table)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)

		return s, nil
	case config.RecordStoreMongo:
		m, err := recordstore.OpenMongo(a.config.MongoURI, a.config.MongoDatabase, a.config.Table)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return m.Close(context.Background()) })

		return m, nil
	default:
		return recordstore.NewMemory(), nil
	}
}

func (a *App) contentStore(ctx context.Context) (contentstore.ObjectStore, error) {
	switch a.config.ContentStore {
	case config.ContentStoreS3:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		return contentstore.NewS3(s3.NewFromConfig(cfg), a.config.Bucket), nil
	case config.ContentStoreDir:
		return contentstore.NewDir(a.config.ContentDir)
	default:
		return contentstore.NewMemory(), nil
	}
}

// Close releases store connections opened by the app.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.sugarLogger.Warnw("close", "error", err)
		}
	}
	a.closers = nil
}
