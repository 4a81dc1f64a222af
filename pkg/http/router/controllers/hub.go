package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/util"
)

// User one websocket connection. a request frame carries a grid, the reply is a sequence of step frames
// followed by one data frame.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*computePathRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &computePathRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// StreamPath serves one request frame. a returned error means the connection is unusable.
func (u *User) StreamPath(ctx context.Context) error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateRequest(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	solved, err := u.hub.pathfindingService.StreamPath(ctx, req.Grid, func(ev routing.StepEvent) error {
		return u.write(envelope{"step": NewStepResponse(ev)})
	})
	if err != nil {
		var ierr *util.Error
		if errors.As(err, &ierr) && ierr.Code() == util.ErrBadParamInput {
			return u.writeError(http.StatusBadRequest, ierr.Error())
		}
		return err
	}

	return u.write(envelope{"data": NewComputePathResponse(solved)})
}

func (u *User) writeError(status int, message string) error {
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(status),
		"message": message,
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu                 sync.RWMutex
	seq                uint
	us                 []*User
	ns                 map[uint]*User
	pathfindingService PathfindingService
}

func NewHub(pathfindingService PathfindingService) *Hub {
	return &Hub{
		ns:                 make(map[uint]*User),
		us:                 make([]*User, 0),
		pathfindingService: pathfindingService,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(user)
}

func (h *Hub) remove(user *User) {
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
	user.conn.Close()
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, user := range append([]*User(nil), h.us...) {
		h.remove(user)
	}
}

func (h *Hub) NumberOfUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}
