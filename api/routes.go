package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/handlers/v1/account"
	"github.com/carson-networks/finance-server/internal/handlers/v1/category"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/metrics"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	Service   *service.Service
	Engine    *engine.Engine
	Storage   *storage.Storage
	Collector *metrics.Collector

	server *http.Server
}

// Routes builds the full handler tree: the versioned Huma API plus the
// unversioned /status and /metrics endpoints.
func (r *Rest) Routes() http.Handler {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("finance-server", "1.0.0")
	api := humago.New(mux, humaConfig)
	api.UseMiddleware(logging.Middleware(r.Logger))
	api.UseMiddleware(identity.Middleware(api))

	transaction.NewCreateTransactionHandler(r.Engine).Register(api)
	transaction.NewDeleteTransactionHandler(r.Engine).Register(api)
	transaction.NewUpdateTransactionHandler(r.Engine).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction, r.Service.Account).Register(api)

	account.NewCreateAccountHandler(r.Service.Account).Register(api)
	account.NewGetAccountHandler(r.Service.Account).Register(api)
	account.NewListAccountsHandler(r.Service.Account).Register(api)
	account.NewUpdateAccountHandler(r.Service.Account).Register(api)
	account.NewDeleteAccountHandler(r.Engine).Register(api)

	category.NewCreateCategoryHandler(r.Service.Category).Register(api)
	category.NewGetCategoryHandler(r.Service.Category).Register(api)
	category.NewListCategoriesHandler(r.Service.Category).Register(api)
	category.NewUpdateCategoryHandler(r.Service.Category).Register(api)
	category.NewDeleteCategoryHandler(r.Service.Category).Register(api)

	statusHandler := status.NewHandler(r.Storage.DB)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.Handle("/metrics", r.Collector.Handler())

	return mux
}

func (r *Rest) Serve() {
	r.server = &http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := r.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// Shutdown drains in-flight requests before returning.
func (r *Rest) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
