package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *LiveHub, projectID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Subscribe(ws, r.URL.Query().Get("project_id"))
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?project_id=" + projectID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *LiveHub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", want, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLiveHub_BroadcastReachesSubscriber(t *testing.T) {
	hub := NewLiveHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, "")
	waitForClients(t, hub, 1)

	hub.Broadcast(&LiveEvent{
		Event:     "progress_reported",
		ProjectID: "proj-1",
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got LiveEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "progress_reported", got.Event)
	assert.Equal(t, "proj-1", got.ProjectID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestLiveHub_ProjectFilter(t *testing.T) {
	hub := NewLiveHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, "proj-1")
	waitForClients(t, hub, 1)

	// Event for a different project must not be delivered
	hub.Broadcast(&LiveEvent{Event: "progress_reported", ProjectID: "proj-2"})
	hub.Broadcast(&LiveEvent{Event: "progress_updated", ProjectID: "proj-1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got LiveEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "progress_updated", got.Event)
	assert.Equal(t, "proj-1", got.ProjectID)
}

func TestLiveHub_DisconnectedClientIsRemoved(t *testing.T) {
	hub := NewLiveHub()
	defer hub.Close()

	conn := dialTestHub(t, hub, "")
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}
