// Package server assembles the repositories, use cases and handlers into one
// gRPC server.
package server

import (
	"time"

	posv1 "github.com/fekuna/omnipos-pos-ledger/api/posv1"
	catH "github.com/fekuna/omnipos-pos-ledger/internal/catalog/handler"
	catRepoPkg "github.com/fekuna/omnipos-pos-ledger/internal/catalog/repository"
	catUCPkg "github.com/fekuna/omnipos-pos-ledger/internal/catalog/usecase"
	coH "github.com/fekuna/omnipos-pos-ledger/internal/checkout/handler"
	coUCPkg "github.com/fekuna/omnipos-pos-ledger/internal/checkout/usecase"
	ledH "github.com/fekuna/omnipos-pos-ledger/internal/ledger/handler"
	ledRepoPkg "github.com/fekuna/omnipos-pos-ledger/internal/ledger/repository"
	ledUCPkg "github.com/fekuna/omnipos-pos-ledger/internal/ledger/usecase"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database"
	"github.com/fekuna/omnipos-pos-ledger/pkg/i18n"
	"github.com/fekuna/omnipos-pos-ledger/pkg/lock"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/fekuna/omnipos-pos-ledger/pkg/middleware"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Deps struct {
	DB         *database.DB
	Locker     lock.Locker
	Translator *i18n.Translator
	Logger     logger.ZapLogger
	// Clock overrides time.Now for commit timestamps.
	Clock func() time.Time
}

type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
}

func New(d *Deps) *Server {
	// Repositories
	catRepo := catRepoPkg.NewSQLRepository(d.DB.DB)
	ledRepo := ledRepoPkg.NewSQLRepository(d.DB.DB)

	// UseCases
	var opts []coUCPkg.Option
	if d.Clock != nil {
		opts = append(opts, coUCPkg.WithClock(d.Clock))
	}
	catUC := catUCPkg.NewCatalogUseCase(catRepo, d.Logger)
	ledUC := ledUCPkg.NewLedgerUseCase(ledRepo, catRepo, d.Logger)
	coUC := coUCPkg.NewCheckoutUseCase(d.DB, catRepo, ledRepo, d.Locker, d.Logger, opts...)

	// Handlers
	grpcServer := grpc.NewServer(middleware.ServerOptions(d.Logger)...)
	posv1.RegisterCatalogServiceServer(grpcServer, catH.NewCatalogHandler(catUC, d.Logger))
	posv1.RegisterLedgerServiceServer(grpcServer, ledH.NewLedgerHandler(ledUC, d.Logger))
	posv1.RegisterCheckoutServiceServer(grpcServer, coH.NewCheckoutHandler(coUC, d.Translator, d.Logger))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	for _, name := range []string{"", posv1.CatalogServiceName, posv1.CheckoutServiceName, posv1.LedgerServiceName} {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	return &Server{GRPC: grpcServer, Health: hs}
}

// Stop marks every service as not serving and drains in-flight calls.
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.GRPC.GracefulStop()
}
