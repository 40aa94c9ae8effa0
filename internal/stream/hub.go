package stream

import (
	"context"
	"strings"
	"sync"
	"time"

	"backend-citywalk/internal/logging"
	"backend-citywalk/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "tracks:"
	channelSuffix  = ":broadcast"
	channelPattern = channelPrefix + "*" + channelSuffix

	clientBuffer     = 64
	subscribeTimeout = 5 * time.Second
)

// Hub fans accepted tracks out to websocket clients subscribed per user.
//
// With a Redis client every instance publishes to Redis and delivers only what
// its pattern subscription receives, so each client sees a message once no
// matter which instance accepted the track. Without Redis, delivery is local.
type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	UserID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		clients: map[string]map[*Client]struct{}{},
	}
	if redisClient == nil {
		return h
	}

	ctx, cancel := context.WithTimeout(context.Background(), subscribeTimeout)
	defer cancel()

	pubsub := redisClient.PSubscribe(ctx, channelPattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		logging.Warn().Err(err).Msg("redis subscribe failed, live feed is local only")
		_ = pubsub.Close()
		return h
	}

	h.redis = redisClient
	h.pubsub = pubsub
	go h.subscribeRedis()
	return h
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, clientBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][client] = struct{}{}
	metrics.StreamClients.Inc()
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userClients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := userClients[client]; !ok {
		return
	}
	delete(userClients, client)
	if len(userClients) == 0 {
		delete(h.clients, client.UserID)
	}
	close(client.Send)
	metrics.StreamClients.Dec()
}

// ClientCount reports how many clients are subscribed to userID.
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast publishes payload to every subscriber of userID. A failed Redis
// publish falls back to local delivery.
func (h *Hub) Broadcast(ctx context.Context, userID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(ctx, redisChannel(userID), payload).Err()
		if err == nil {
			return
		}
		logging.Warn().Err(err).Str("user_id", userID).Msg("redis publish failed")
	}
	h.deliver(userID, payload)
}

// Close stops the Redis subscription. Registered clients are left open.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

// deliver drops the message for clients whose buffer is full.
func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	for msg := range h.pubsub.Channel() {
		userID, ok := userIDFromChannel(msg.Channel)
		if !ok {
			continue
		}
		h.deliver(userID, []byte(msg.Payload))
	}
}

func redisChannel(userID string) string {
	return channelPrefix + userID + channelSuffix
}

// userIDFromChannel parses tracks:{user_id}:broadcast.
func userIDFromChannel(ch string) (string, bool) {
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return "", false
	}
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return "", false
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)], true
}
