package http

import (
	"context"

	http_router "github.com/lintang-b-s/Gridstar/pkg/http/router"
	"github.com/lintang-b-s/Gridstar/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Gridstar/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log, g: &errgroup.Group{}}
}

// Use starts the rest api and the websocket server in the background. they stop when ctx is cancelled.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	pathfindingService controllers.PathfindingService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)

	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}

	api := http_router.NewAPI(log, viper.GetFloat64("RATE_LIMIT_RPS"), viper.GetInt("RATE_LIMIT_BURST"))

	s.g.Go(func() error {
		return api.Run(
			ctx, config, log,
			useRateLimit, pathfindingService,
		)
	})

	return s, nil
}

// Wait returns the first error of the servers started by Use.
func (s *Server) Wait() error {
	return s.g.Wait()
}
