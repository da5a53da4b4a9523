// Package listener implements the node's push channel: a WebSocket connection
// over which the node streams block and transaction events to subscribed
// topics.
//
// On attach the node assigns the connection a uid; every subscription is then
// a small JSON frame referencing that uid. Incoming frames carry a topic and a
// payload and are routed to the handlers registered for that exact topic.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/halcyon-ledger/halcyon-go/pkg/log"
	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

// Topic name roots. Address-scoped topics append "/" plus the raw address.
const (
	TopicBlock          = "block"
	TopicFinalizedBlock = "finalizedBlock"
	TopicConfirmedAdded = "confirmedAdded"
	TopicStatus         = "status"
)

var (
	ErrAlreadyOpen  = fmt.Errorf("listener already open")
	ErrNotOpen      = fmt.Errorf("listener not open")
	ErrDialing      = fmt.Errorf("error dialing push channel")
	ErrAttachFailed = fmt.Errorf("error reading attach frame")
)

// Config controls one Listener connection.
type Config struct {
	// URL of the node's push channel, e.g. "ws://node:3000/ws".
	URL string

	// HandshakeTimeout bounds the WebSocket handshake. Defaults to 5s.
	HandshakeTimeout time.Duration

	// PingInterval is how often keep-alive pings are sent. Defaults to 15s.
	PingInterval time.Duration

	// Dialer optionally injects the transport. Defaults to a plain
	// websocket.Dialer honoring HandshakeTimeout.
	Dialer *websocket.Dialer

	// Logger for connection lifecycle events. Defaults to a noop logger.
	Logger log.Logger
}

// Handler receives the raw payload of one frame on a subscribed topic.
type Handler func(payload json.RawMessage)

// Listener is a client of the node's push channel. Safe for concurrent use;
// handlers run on the read loop goroutine and should not block.
type Listener struct {
	cfg Config
	lg  log.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	cancel   context.CancelFunc
	uid      string
	handlers map[string][]Handler

	writeMu sync.Mutex
}

// New builds a Listener. The connection is not opened until Open is called.
func New(cfg Config) *Listener {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 5 * time.Second
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 15 * time.Second
	}
	lg := cfg.Logger
	if lg == nil {
		lg = log.NewNoopLogger()
	}

	return &Listener{
		cfg:      cfg,
		lg:       lg.WithName("listener"),
		handlers: make(map[string][]Handler),
	}
}

type attachFrame struct {
	UID string `json:"uid"`
}

type subscribeFrame struct {
	UID         string `json:"uid"`
	Subscribe   string `json:"subscribe,omitempty"`
	Unsubscribe string `json:"unsubscribe,omitempty"`
}

type eventFrame struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

// Open connects to the push channel and starts routing frames. It returns
// after the node's attach frame has been received; handleClosure is invoked
// exactly once when the connection ends, with the first error observed (nil
// on a clean shutdown).
func (l *Listener) Open(ctx context.Context, handleClosure func(err error)) error {
	l.mu.Lock()
	if l.conn != nil {
		l.mu.Unlock()
		return ErrAlreadyOpen
	}
	l.mu.Unlock()

	dialer := l.cfg.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: l.cfg.HandshakeTimeout}
	}

	conn, _, err := dialer.DialContext(ctx, l.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDialing, err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(l.cfg.HandshakeTimeout))
	var attach attachFrame
	if err := conn.ReadJSON(&attach); err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: %w", ErrAttachFailed, err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	childCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	l.conn = conn
	l.cancel = cancel
	l.uid = attach.UID
	l.mu.Unlock()

	var closureErr error
	var closureOnce sync.Once
	done := make(chan struct{}, 2)
	finish := func(err error) {
		closureOnce.Do(func() { closureErr = err })
		cancel()
		done <- struct{}{}
	}

	// Closing the connection on context cancellation is what unblocks the
	// read loop.
	go func() {
		<-childCtx.Done()
		_ = conn.Close()
	}()

	go l.readFrames(childCtx, finish)
	go l.pingPeriodically(childCtx, finish)

	go func() {
		<-done
		<-done

		l.mu.Lock()
		l.conn = nil
		l.cancel = nil
		l.mu.Unlock()

		handleClosure(closureErr)
	}()

	l.lg.Info("push channel attached", "uid", attach.UID, "url", l.cfg.URL)
	return nil
}

// UID returns the connection id assigned by the node, or "" before Open.
func (l *Listener) UID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.uid
}

// Close tears the connection down. The closure handler passed to Open still
// runs, with a nil error.
func (l *Listener) Close() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Subscribe registers a handler for a topic and tells the node to start
// streaming it. Multiple handlers may be registered on one topic.
func (l *Listener) Subscribe(topic string, h Handler) error {
	l.mu.Lock()
	if l.conn == nil {
		l.mu.Unlock()
		return ErrNotOpen
	}
	first := len(l.handlers[topic]) == 0
	l.handlers[topic] = append(l.handlers[topic], h)
	uid := l.uid
	conn := l.conn
	l.mu.Unlock()

	if !first {
		return nil
	}
	return l.writeJSON(conn, subscribeFrame{UID: uid, Subscribe: topic})
}

// Unsubscribe drops every handler for a topic and tells the node to stop
// streaming it.
func (l *Listener) Unsubscribe(topic string) error {
	l.mu.Lock()
	if l.conn == nil {
		l.mu.Unlock()
		return ErrNotOpen
	}
	delete(l.handlers, topic)
	uid := l.uid
	conn := l.conn
	l.mu.Unlock()

	return l.writeJSON(conn, subscribeFrame{UID: uid, Unsubscribe: topic})
}

func (l *Listener) writeJSON(conn *websocket.Conn, v any) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return conn.WriteJSON(v)
}

func (l *Listener) readFrames(ctx context.Context, finish func(err error)) {
	l.mu.Lock()
	conn := l.conn
	l.mu.Unlock()

	for {
		_, raw, err := conn.ReadMessage()
		if ctx.Err() != nil {
			finish(nil)
			return
		} else if err != nil {
			finish(fmt.Errorf("push channel read: %w", err))
			return
		}

		var frame eventFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			l.lg.Warn("malformed push frame", "error", err)
			continue
		}

		l.mu.Lock()
		handlers := append([]Handler(nil), l.handlers[frame.Topic]...)
		l.mu.Unlock()

		if len(handlers) == 0 {
			l.lg.Debug("frame on unsubscribed topic", "topic", frame.Topic)
			continue
		}
		for _, h := range handlers {
			h(frame.Data)
		}
	}
}

func (l *Listener) pingPeriodically(ctx context.Context, finish func(err error)) {
	l.mu.Lock()
	conn := l.conn
	l.mu.Unlock()

	ticker := time.NewTicker(l.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			finish(nil)
			return
		case <-ticker.C:
			l.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(l.cfg.HandshakeTimeout))
			l.writeMu.Unlock()
			if err != nil {
				finish(fmt.Errorf("push channel ping: %w", err))
				return
			}
		}
	}
}

// AddressTopic renders an address-scoped topic name such as
// "confirmedAdded/<raw address>".
func AddressTopic(root string, addr model.Address) string {
	return root + "/" + addr.Raw()
}
