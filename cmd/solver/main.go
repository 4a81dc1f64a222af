package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/engine"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/logger"
	"go.uber.org/zap"
)

var (
	gridFile   = flag.String("grid", "", "grid file, one row per line using . # S E (bzip2 when it ends with .bz2). reads stdin when empty")
	outFile    = flag.String("out", "", "write the searched grid to this file (bzip2 when it ends with .bz2)")
	pixelWidth = flag.Int("pixel_width", 800, "pixel width of the drawing surface")
	trace      = flag.Bool("trace", false, "print every frontier/visited/path step")
	maxSteps   = flag.Int("max_steps", 0, "cancel the search after this many expansions, 0 means no limit")
	timeout    = flag.Duration("timeout", 10*time.Second, "search timeout")
)

func main() {
	flag.Parse()
	log, err := logger.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var grid *da.Grid
	if *gridFile != "" {
		grid, err = da.ReadGrid(*gridFile, *pixelWidth)
	} else {
		grid, err = da.ParseGrid(os.Stdin, *pixelWidth)
	}
	if err != nil {
		log.Fatal("cannot read grid", zap.Error(err))
	}

	pathfindingEngine, err := engine.NewEngine(log, 0)
	if err != nil {
		log.Fatal("cannot create engine", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	onStep := func(ev routing.StepEvent) routing.StepSignal {
		if *trace {
			fmt.Printf("step %d: %v %v\n", ev.Step, ev.Cell, ev.State)
		}
		if *maxSteps > 0 && ev.Step >= *maxSteps {
			return routing.CANCEL
		}
		return routing.CONTINUE
	}
	onCell := func(ev routing.StepEvent) routing.StepSignal {
		if *trace {
			fmt.Printf("path %d: %v\n", ev.Step, ev.Cell)
		}
		return routing.CONTINUE
	}

	sol, err := pathfindingEngine.Solve(ctx, grid, onStep, onCell)
	if err != nil {
		log.Fatal("search failed", zap.Error(err))
	}

	if *outFile != "" {
		if err := grid.WriteGrid(*outFile); err != nil {
			log.Fatal("cannot write grid", zap.Error(err))
		}
	}

	fmt.Println(grid.String())
	fmt.Printf("outcome: %v\n", sol.Outcome)
	fmt.Printf("expanded cells: %d\n", sol.ExpandedCells)
	if sol.Outcome == routing.PATH_FOUND {
		fmt.Printf("length: %d\n", sol.Length)
		fmt.Printf("polyline: %s\n", sol.Polyline)
	}
}
