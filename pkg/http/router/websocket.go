package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/Gridstar/pkg/concurrent"
	"github.com/lintang-b-s/Gridstar/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Gridstar/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

const (
	websocketPoolSize  = 128
	websocketPoolQueue = 64
	websocketPoolSpawn = 16
)

// handleWebsocket serves the streaming search over websocket until ctx is done.
// connections are watched with epoll (netpoll) instead of one blocked goroutine per connection,
// ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	pathfindingService controllers.PathfindingService,
) error {
	srv := http_server.New(ctx, nil, config, true)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	api.log.Info(fmt.Sprintf("streaming search websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		return err
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		return err
	}

	api.pool = concurrent.NewGoroutinePool(websocketPoolSize, websocketPoolQueue)
	api.hub = controllers.NewHub(pathfindingService)
	api.pool.Spawn(websocketPoolSpawn)

	// accept is a channel to signal about next incoming connection Accept() results.
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		// the listener was registered one-shot, re-arm it after this accept
		defer api.poller.Resume(acceptDesc)

		err := api.pool.ScheduleTimeout(time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(ctx, conn)
		})
		if err == nil {
			err = <-accept
		}
		if err == nil {
			return
		}

		// pool busy or a temporary accept error: cool down before accepting again
		var ne net.Error
		if errors.Is(err, concurrent.ErrScheduleTimeout) || (errors.As(err, &ne) && ne.Timeout()) {
			delay := 5 * time.Millisecond
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
			time.Sleep(delay)
			return
		}
		if errors.Is(err, net.ErrClosed) {
			return
		}
		api.log.Error("accept error", zap.Error(err))
	})
	if err != nil {
		ln.Close()
		return err
	}

	<-ctx.Done()

	_ = api.poller.Stop(acceptDesc)
	ln.Close()
	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
	return nil
}

// handle upgrades conn and serves its request frames on the goroutine pool whenever netpoll reports it readable.
func (api *API) handle(ctx context.Context, conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("cannot watch websocket connection", zap.Error(err))
		api.hub.Remove(user)
		return
	}

	err = api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// the peer closed its end
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))

			_ = api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		api.pool.Schedule(func() {
			if err := user.StreamPath(ctx); err != nil {
				api.log.Info("closing websocket connection", zap.Error(err))
				_ = api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
	})
	if err != nil {
		api.log.Error("cannot watch websocket connection", zap.Error(err))
		api.hub.Remove(user)
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
