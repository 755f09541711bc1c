package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/skybook/api"
	"github.com/Domenick1991/skybook/config"
	bookingsapi "github.com/Domenick1991/skybook/internal/api/bookings_service_api"
	flightsapi "github.com/Domenick1991/skybook/internal/api/flights_service_api"
	_ "github.com/Domenick1991/skybook/internal/docs"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/service/booking"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
)

// Directory authenticates callers and reports how many users exist.
type Directory interface {
	Authenticate(username, password string) (domain.Caller, error)
	Count() int
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts gRPC and HTTP (gin + swagger) servers and blocks until context is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, directory Directory, logger *slog.Logger) error {
	s := newServers(cfg, bookingSvc, directory)

	errCh := make(chan error, 2)

	// gRPC server
	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	logger.Info("grpc server listening", "address", cfg.GRPC.Address)
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	// HTTP API + swagger
	logger.Info("http server listening", "address", cfg.HTTP.Address)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		_ = s.httpServer.Close()
		return err
	case <-ctx.Done():
		logger.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, bookingSvc booking.BookingUseCase, directory Directory) *Servers {
	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(
		bookingsapi.UnaryAuthInterceptor(directory, flightsapi.SearchFlightsMethod),
	))
	flightsapi.RegisterFlightsServiceServer(grpcSrv, flightsapi.NewServer(bookingSvc))
	bookingsapi.RegisterBookingsServiceServer(grpcSrv, bookingsapi.NewServer(bookingSvc, directory))

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           newRouter(bookingSvc, directory),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func newRouter(bookingSvc booking.BookingUseCase, directory Directory) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	v1 := router.Group("/api/v1")
	api.NewFlightHandler(bookingSvc).Register(v1)
	api.NewBookingHandler(bookingSvc, directory).Register(v1.Group("", api.BasicAuth(directory)))

	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	return router
}
