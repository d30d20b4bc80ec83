package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/togongs/goods-shop/internal/mykafka"
)

// Client protocol event names.
const (
	EventBuy      = "BUY"
	EventBuyGoods = "BUY_GOODS"
)

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// PurchaseNotification is transient, it lives only for the duration
// of the broadcast. Fields arrive client-controlled and are relayed
// as received, only the date stamp is added server-side.
type PurchaseNotification struct {
	Nickname  string `json:"nickname"`
	GoodsID   uint   `json:"goodsId"`
	GoodsName string `json:"goodsName"`
	Date      string `json:"date,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub keeps the registry of connected realtime clients and fans every
// purchase notification out to all of them, sender included. The
// channel is unauthenticated.
type Hub struct {
	log      *slog.Logger
	producer *mykafka.Producer

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(log *slog.Logger, producer *mykafka.Producer) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:      log,
		producer: producer,
		clients:  make(map[*client]struct{}),
	}
}

// Handler upgrades the connection and serves it until the peer goes
// away.
func (h *Hub) Handler(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := newClient(conn)
	h.register(cl)
	go cl.writeLoop()
	h.readLoop(cl)
	return nil
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("realtime client connected", "clients", n)
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	_, ok := h.clients[cl]
	if ok {
		delete(h.clients, cl)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		cl.shutdown()
		h.log.Info("realtime client disconnected", "clients", n)
	}
}

func (h *Hub) readLoop(cl *client) {
	defer func() {
		h.unregister(cl)
		cl.conn.Close()
	}()

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		if env.Event != EventBuy {
			continue
		}

		var p PurchaseNotification
		_ = json.Unmarshal(env.Data, &p)
		p.Date = time.Now().UTC().Format(time.RFC3339)

		h.Broadcast(EventBuyGoods, p)
		h.publish(p)
	}
}

// Broadcast sends the event to a snapshot of the current subscribers,
// so registry changes during delivery are safe. A client whose send
// buffer is full is dropped, there is no retry.
func (h *Hub) Broadcast(event string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.log.Error("broadcast marshal error", "error", err)
		return
	}
	msg, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		h.log.Error("broadcast marshal error", "error", err)
		return
	}

	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		targets = append(targets, cl)
	}
	h.mu.Unlock()

	for _, cl := range targets {
		if !cl.enqueue(msg) {
			h.unregister(cl)
		}
	}
}

func (h *Hub) publish(p PurchaseNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := map[string]interface{}{
		"type":      "goods_purchased",
		"nickname":  p.Nickname,
		"goodsId":   p.GoodsID,
		"goodsName": p.GoodsName,
		"date":      p.Date,
	}
	if err := h.producer.PublishEvent(ctx, "purchase_events", p.Nickname, event); err != nil {
		h.log.Error("kafka publish error", "error", err)
	}
}

// Close drops every connected client, used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		delete(h.clients, cl)
		targets = append(targets, cl)
	}
	h.mu.Unlock()

	for _, cl := range targets {
		cl.shutdown()
	}
}
