package ws

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/chatbot"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger := zerolog.Nop()
	hub := NewHub(chatbot.New(rand.New(rand.NewPCG(1, 2))), &logger)
	hub.Start()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, nil)
	}))
	t.Cleanup(func() {
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = hub.Stop(ctx)
	})
	return hub, srv
}

func dial(t *testing.T, hub *Hub, srv *httptest.Server, want int) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return hub.ClientCount() == want }, time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestHub_ChatReplyGoesToSenderOnly(t *testing.T) {
	hub, srv := startHub(t)
	sender := dial(t, hub, srv, 1)
	other := dial(t, hub, srv, 2)

	require.NoError(t, sender.WriteJSON(map[string]string{"type": "chat", "message": "hello there"}))

	m := readMessage(t, sender)
	assert.Equal(t, MessageChatReply, m.Type)
	data, ok := m.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["message"])
	assert.False(t, m.Timestamp.IsZero())

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "other clients receive nothing")
}

func TestHub_RejectsBadFrames(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, hub, srv, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	m := readMessage(t, conn)
	assert.Equal(t, MessageError, m.Type)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dance"}))
	m = readMessage(t, conn)
	assert.Equal(t, MessageError, m.Type)
	assert.Equal(t, "Unsupported message type", m.Data.(map[string]any)["message"])

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "chat", "message": "   "}))
	m = readMessage(t, conn)
	assert.Equal(t, "Message is required", m.Data.(map[string]any)["message"])
}

func TestHub_PublishBroadcasts(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, hub, srv, 1)
	b := dial(t, hub, srv, 2)

	user := uuid.New()
	hub.Publish(model.ActivityEvent{
		Type:      model.ActivityWorkoutLogged,
		UserID:    user,
		UserName:  "Sam",
		Timestamp: time.Now().UTC(),
	})

	for _, conn := range []*websocket.Conn{a, b} {
		m := readMessage(t, conn)
		assert.Equal(t, string(model.ActivityWorkoutLogged), m.Type)

		raw, err := json.Marshal(m.Data)
		require.NoError(t, err)
		var e model.ActivityEvent
		require.NoError(t, json.Unmarshal(raw, &e))
		assert.Equal(t, user, e.UserID)
		assert.Equal(t, "Sam", e.UserName)
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, hub, srv, 1)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesConnections(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, hub, srv, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, hub.Stop(ctx))
	assert.Zero(t, hub.ClientCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHub_StopWithoutStart(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(chatbot.New(rand.New(rand.NewPCG(1, 2))), &logger)
	assert.NoError(t, hub.Stop(context.Background()))
}
