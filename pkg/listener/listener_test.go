package listener

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// pushNode is a minimal in-process push channel: it assigns a uid on attach,
// records subscribe frames and lets tests inject event frames.
type pushNode struct {
	uid        string
	subscribed chan string
	send       chan any
}

func newPushNode(uid string) *pushNode {
	return &pushNode{
		uid:        uid,
		subscribed: make(chan string, 8),
		send:       make(chan any, 8),
	}
}

func (n *pushNode) handler(t *testing.T) http.HandlerFunc {
	upgrader := websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(map[string]string{"uid": n.uid}))

		go func() {
			for frame := range n.send {
				if err := conn.WriteJSON(frame); err != nil {
					return
				}
			}
		}()

		for {
			var frame subscribeFrame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			if frame.UID != n.uid {
				t.Errorf("frame with wrong uid %q", frame.UID)
			}
			if frame.Subscribe != "" {
				n.subscribed <- frame.Subscribe
			}
		}
	}
}

func startPushNode(t *testing.T) (*pushNode, string) {
	t.Helper()
	node := newPushNode("test-uid-1")
	srv := httptest.NewServer(node.handler(t))
	t.Cleanup(srv.Close)
	return node, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestListenerAttachAndSubscribe(t *testing.T) {
	t.Parallel()

	node, wsURL := startPushNode(t)

	l := New(Config{URL: wsURL})
	closed := make(chan error, 1)
	require.NoError(t, l.Open(context.Background(), func(err error) { closed <- err }))
	assert.Equal(t, "test-uid-1", l.UID())

	frames := make(chan json.RawMessage, 1)
	require.NoError(t, l.Subscribe(TopicBlock, func(payload json.RawMessage) {
		frames <- payload
	}))
	assert.Equal(t, TopicBlock, waitFor(t, node.subscribed, "subscribe frame"))

	node.send <- map[string]any{
		"topic": TopicBlock,
		"data":  map[string]any{"meta": map[string]any{"hash": "ABCD"}},
	}
	payload := waitFor(t, frames, "block frame")
	assert.Contains(t, string(payload), "ABCD")

	l.Close()
	assert.NoError(t, waitFor(t, closed, "closure callback"))
}

func TestListenerSubscribeFrameSentOnce(t *testing.T) {
	t.Parallel()

	node, wsURL := startPushNode(t)

	l := New(Config{URL: wsURL})
	require.NoError(t, l.Open(context.Background(), func(error) {}))
	defer l.Close()

	require.NoError(t, l.Subscribe(TopicBlock, func(json.RawMessage) {}))
	require.NoError(t, l.Subscribe(TopicBlock, func(json.RawMessage) {}))

	waitFor(t, node.subscribed, "subscribe frame")
	select {
	case topic := <-node.subscribed:
		t.Fatalf("second subscribe frame sent for %q", topic)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestListenerRoutesByExactTopic(t *testing.T) {
	t.Parallel()

	node, wsURL := startPushNode(t)

	l := New(Config{URL: wsURL})
	require.NoError(t, l.Open(context.Background(), func(error) {}))
	defer l.Close()

	blocks := make(chan model.BlockInfo, 1)
	require.NoError(t, l.NewBlock(func(b model.BlockInfo) { blocks <- b }))
	waitFor(t, node.subscribed, "subscribe frame")

	// A frame on a different topic must not reach the block handler.
	node.send <- map[string]any{"topic": TopicFinalizedBlock, "data": map[string]any{}}
	node.send <- map[string]any{
		"topic": TopicBlock,
		"data": map[string]any{
			"meta": map[string]string{"hash": "C0FFEE"},
			"block": map[string]any{
				"height":          "4321",
				"timestamp":       "88000",
				"signerPublicKey": "AA",
				"networkType":     152,
			},
		},
	}

	block := waitFor(t, blocks, "decoded block")
	assert.Equal(t, "C0FFEE", block.Hash)
	assert.Equal(t, uint64(4321), block.Height.Uint64())
	assert.Equal(t, model.NetworkTestnet, block.Network)

	select {
	case b := <-blocks:
		t.Fatalf("unexpected extra block %+v", b)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestListenerLifecycleErrors(t *testing.T) {
	t.Parallel()

	_, wsURL := startPushNode(t)

	l := New(Config{URL: wsURL})
	require.ErrorIs(t, l.Subscribe(TopicBlock, func(json.RawMessage) {}), ErrNotOpen)
	require.ErrorIs(t, l.Unsubscribe(TopicBlock), ErrNotOpen)

	require.NoError(t, l.Open(context.Background(), func(error) {}))
	defer l.Close()
	require.ErrorIs(t, l.Open(context.Background(), func(error) {}), ErrAlreadyOpen)
}

func TestListenerDialFailure(t *testing.T) {
	t.Parallel()

	l := New(Config{URL: "ws://127.0.0.1:1/ws", HandshakeTimeout: 500 * time.Millisecond})
	err := l.Open(context.Background(), func(error) {})
	require.ErrorIs(t, err, ErrDialing)
}

func TestAddressTopic(t *testing.T) {
	t.Parallel()

	addr, err := model.AddressFromPublicKey(
		"C2F93346E27CE6AD1A9F8F5E3066F8326593A406BDF357ACB041E2F9AB402EFE",
		model.NetworkTestnet,
	)
	require.NoError(t, err)

	topic := AddressTopic(TopicConfirmedAdded, addr)
	assert.Equal(t, TopicConfirmedAdded+"/"+addr.Raw(), topic)
}
