package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/AntonStoeckl/videorental/rental/features/availableinventory"
	"github.com/AntonStoeckl/videorental/rental/features/checkin"
	"github.com/AntonStoeckl/videorental/rental/features/checkout"
	"github.com/AntonStoeckl/videorental/rental/features/overduerentals"
	"github.com/AntonStoeckl/videorental/store"
)

// ErrNilDependency is returned when NewServer is given a nil store or lifecycle.
var ErrNilDependency = errors.New("http server dependency must not be nil")

// Store is the CRUD surface of the persistence store. sqlengine.Store satisfies it.
type Store interface {
	GetVideo(ctx context.Context, videoID uuid.UUID) (store.Video, error)
	ListVideos(ctx context.Context) (store.Videos, error)
	CreateVideo(ctx context.Context, video store.Video) (store.Video, error)
	UpdateVideo(ctx context.Context, video store.Video) error
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
	RentalsForVideo(ctx context.Context, videoID uuid.UUID) (store.Rentals, error)

	GetCustomer(ctx context.Context, customerID uuid.UUID) (store.Customer, error)
	ListCustomers(ctx context.Context) (store.Customers, error)
	CreateCustomer(ctx context.Context, customer store.Customer) (store.Customer, error)
	UpdateCustomer(ctx context.Context, customer store.Customer) error
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error
	RentalsForCustomer(ctx context.Context, customerID uuid.UUID) (store.Rentals, error)
}

// Lifecycle runs the rental operations. lifecycle.Manager satisfies it.
type Lifecycle interface {
	CheckOut(ctx context.Context, videoID uuid.UUID, customerID uuid.UUID) (checkout.Result, error)
	CheckIn(ctx context.Context, videoID uuid.UUID, customerID uuid.UUID) (checkin.Result, error)
	AvailableInventory(ctx context.Context, videoID uuid.UUID) (availableinventory.Result, error)
	OverdueRentals(ctx context.Context) (overduerentals.Result, error)
}

// Server is the HTTP API of the video store.
type Server struct {
	echo          *echo.Echo
	store         Store
	lifecycle     Lifecycle
	logger        *slog.Logger
	metricsReader sdkmetric.Reader
}

// NewServer creates a Server with all routes registered.
func NewServer(s Store, l Lifecycle, options ...Option) (*Server, error) {
	if s == nil || l == nil {
		return nil, ErrNilDependency
	}

	server := &Server{
		echo:      echo.New(),
		store:     s,
		lifecycle: l,
		logger:    slog.Default(),
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, err
		}
	}

	server.echo.HideBanner = true
	server.echo.HidePort = true
	server.echo.JSONSerializer = jsonSerializer{}
	server.echo.Validator = newRequestValidator()
	server.echo.HTTPErrorHandler = server.handleError

	server.registerMiddlewares()
	server.registerRoutes()

	return server, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", s.metrics)

	videos := s.echo.Group("/videos")
	videos.POST("", s.createVideo)
	videos.GET("", s.listVideos)
	videos.GET("/:id", s.getVideo)
	videos.PUT("/:id", s.updateVideo)
	videos.DELETE("/:id", s.deleteVideo)
	videos.GET("/:id/rentals", s.videoRentals)

	customers := s.echo.Group("/customers")
	customers.POST("", s.createCustomer)
	customers.GET("", s.listCustomers)
	customers.GET("/:id", s.getCustomer)
	customers.PUT("/:id", s.updateCustomer)
	customers.DELETE("/:id", s.deleteCustomer)
	customers.GET("/:id/rentals", s.customerRentals)

	rentals := s.echo.Group("/rentals")
	rentals.POST("/check-out", s.checkOut)
	rentals.POST("/check-in", s.checkIn)
	rentals.GET("/overdue", s.overdueRentals)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called. It returns http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
