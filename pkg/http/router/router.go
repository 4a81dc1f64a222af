package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/Gridstar/pkg/concurrent"
	"github.com/lintang-b-s/Gridstar/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/Gridstar/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/Gridstar/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type API struct {
	log       *zap.Logger
	hub       *controllers.Hub
	poller    netpoll.Poller
	pool      *concurrent.GoroutinePool
	rateLimit float64
	rateBurst int
}

func NewAPI(log *zap.Logger, rateLimit float64, rateBurst int) *API {
	return &API{log: log, rateLimit: rateLimit, rateBurst: rateBurst}
}

//	@title			Gridstar API
//	@version		1.0
//	@description	A* shortest paths on square grids with barriers.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	pathfindingService controllers.PathfindingService,
) error {
	log.Info("Run httprouter API")

	router := httprouter.New()

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	pathfindingRoutes := controllers.New(pathfindingService, log)

	pathfindingRoutes.Routes(group)

	wsErr := make(chan error, 1)
	go func() {
		wsErr <- api.handleWebsocket(ctx, config, pathfindingService)
	}()

	mainMwChain := alice.New(api.middlewares(useRateLimit)...).Then(router)

	srv := http_server.New(ctx, mainMwChain, config, false)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-wsErr:
		log.Error("Websocket error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(context.Background())
		return err
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		<-wsErr
		return nil
	}
}

func (api *API) middlewares(useRateLimit bool) []alice.Constructor {
	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Labels, Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit(api.rateLimit, api.rateBurst))
	}
	return mwChain
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
