package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/Gridstar/pkg/engine"
	"github.com/lintang-b-s/Gridstar/pkg/http"
	"github.com/lintang-b-s/Gridstar/pkg/http/usecases"
	"github.com/lintang-b-s/Gridstar/pkg/logger"
	"github.com/lintang-b-s/Gridstar/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	pixelWidth   = flag.Int("pixel_width", 800, "pixel width of the drawing surface, used to compute the cell gap")
	batchWorkers = flag.Int("batch_workers", 0, "number of workers for /api/computePaths, 0 means runtime.NumCPU()")
	streamBuffer = flag.Int("stream_buffer", 64, "buffered step events per streamed search")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Fatal("cannot read config", zap.Error(err))
	}
	viper.SetDefault("CACHE_SIZE", 1024)
	viper.SetDefault("USE_RATE_LIMIT", false)

	pathfindingEngine, err := engine.NewEngine(logger, viper.GetInt("CACHE_SIZE"))
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	pathfindingService := usecases.NewPathfindingService(logger, pathfindingEngine, *pixelWidth, *batchWorkers,
		*streamBuffer)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	_, err = api.Use(ctx,
		logger, viper.GetBool("USE_RATE_LIMIT"), pathfindingService)
	if err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Gridstar Pathfinding Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
