package controllers

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streamFrame struct {
	Step  *stepResponse     `json:"step"`
	Data  *pathResponse     `json:"data"`
	Error map[string]string `json:"error"`
}

func readFrames(t *testing.T, client net.Conn) ([]stepResponse, streamFrame) {
	t.Helper()
	var steps []stepResponse
	for {
		payload, err := wsutil.ReadServerText(client)
		require.NoError(t, err)

		var frame streamFrame
		require.NoError(t, json.Unmarshal(payload, &frame))
		if frame.Step != nil {
			steps = append(steps, *frame.Step)
			continue
		}
		return steps, frame
	}
}

func TestHubStreamPath(t *testing.T) {
	hub := NewHub(newService(t))

	t.Run("steps then solution", func(t *testing.T) {
		server, client := net.Pipe()
		user := hub.Register(server)
		defer hub.Remove(user)

		done := make(chan error, 1)
		go func() { done <- user.StreamPath(context.Background()) }()

		require.NoError(t, wsutil.WriteClientText(client, []byte(`{"grid":["S.",".E"]}`)))
		steps, last := readFrames(t, client)
		require.NoError(t, <-done)

		require.NotNil(t, last.Data)
		assert.Equal(t, "path_found", last.Data.Outcome)
		assert.Equal(t, 2, last.Data.Length)

		// 5 search steps followed by the single intermediate path cell
		require.Len(t, steps, 6)
		assert.Equal(t, "start", steps[0].State)
		assert.Equal(t, stepResponse{Step: 1, Row: 1, Col: 0, State: "path"}, steps[5])
	})

	t.Run("invalid grid gets an error frame", func(t *testing.T) {
		server, client := net.Pipe()
		user := hub.Register(server)
		defer hub.Remove(user)

		done := make(chan error, 1)
		go func() { done <- user.StreamPath(context.Background()) }()

		require.NoError(t, wsutil.WriteClientText(client, []byte(`{"grid":["S..","..E"]}`)))
		steps, last := readFrames(t, client)
		require.NoError(t, <-done)

		assert.Empty(t, steps)
		assert.Equal(t, "Bad Request", last.Error["code"])
	})

	t.Run("broken frame closes the connection", func(t *testing.T) {
		server, client := net.Pipe()
		user := hub.Register(server)
		defer hub.Remove(user)

		done := make(chan error, 1)
		go func() { done <- user.StreamPath(context.Background()) }()

		client.Close()
		assert.Error(t, <-done)
	})
}

func TestHubUsers(t *testing.T) {
	hub := NewHub(newService(t))

	users := make([]*User, 0, 3)
	for i := 0; i < 3; i++ {
		server, _ := net.Pipe()
		users = append(users, hub.Register(server))
	}
	assert.Equal(t, 3, hub.NumberOfUsers())

	hub.Remove(users[1])
	hub.Remove(users[1])
	assert.Equal(t, 2, hub.NumberOfUsers())

	hub.RemoveAllUser()
	assert.Equal(t, 0, hub.NumberOfUsers())
}
