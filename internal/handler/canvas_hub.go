package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"halloffame-backend/internal/cache"
	"halloffame-backend/internal/model"
	"halloffame-backend/internal/presence"
)

// =============================================================================
// Canvas Hub - 보드 단위 WebSocket 룸 관리
// =============================================================================

// CanvasHub manages all board rooms and their connections
type CanvasHub struct {
	rooms       map[string]*BoardRoom // boardKey -> room
	mu          sync.RWMutex
	redisClient *cache.RedisClient // 스냅샷 캐시 (nil 허용)
	presenceMgr *presence.Manager  // 접속자 presence (nil 허용)
}

// BoardRoom represents a single board room
type BoardRoom struct {
	Key     string
	clients map[string]*CanvasClient // ConnID -> client
	mu      sync.RWMutex
}

// messageWriter 단일 프레임 쓰기 인터페이스. *websocket.Conn이 구현한다.
type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// CanvasClient 보드에 접속한 클라이언트
type CanvasClient struct {
	ConnID  string
	Conn    messageWriter
	writeMu sync.Mutex
}

// CanvasEvent 서버 → 클라이언트 이벤트
type CanvasEvent struct {
	Type     string                `json:"type"` // history, new_message, presence, error
	BoardKey string                `json:"board_key,omitempty"`
	Messages []model.CanvasMessage `json:"messages,omitempty"`
	Message  *model.CanvasMessage  `json:"message,omitempty"`
	Viewers  int                   `json:"viewers,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// NewCanvasHub creates a new CanvasHub instance
func NewCanvasHub(redisClient *cache.RedisClient, presenceMgr *presence.Manager) *CanvasHub {
	return &CanvasHub{
		rooms:       make(map[string]*BoardRoom),
		redisClient: redisClient,
		presenceMgr: presenceMgr,
	}
}

// GetOrCreateRoom gets an existing room or creates a new one
func (h *CanvasHub) GetOrCreateRoom(boardKey string) *BoardRoom {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, exists := h.rooms[boardKey]; exists {
		return room
	}

	room := &BoardRoom{
		Key:     boardKey,
		clients: make(map[string]*CanvasClient),
	}
	h.rooms[boardKey] = room
	log.Printf("[CanvasHub] Created room: %s", boardKey)

	return room
}

// Join 클라이언트를 룸에 등록.
// 룸 조회와 삽입을 허브 락 안에서 끝낸다 — 그 사이에 마지막 이탈자가
// 빈 룸을 지우면 허브에서 떨어져 나간 룸에 등록될 수 있다.
func (h *CanvasHub) Join(boardKey string, client *CanvasClient) *BoardRoom {
	h.mu.Lock()
	room, exists := h.rooms[boardKey]
	if !exists {
		room = &BoardRoom{
			Key:     boardKey,
			clients: make(map[string]*CanvasClient),
		}
		h.rooms[boardKey] = room
		log.Printf("[CanvasHub] Created room: %s", boardKey)
	}
	room.mu.Lock()
	room.clients[client.ConnID] = client
	total := len(room.clients)
	room.mu.Unlock()
	h.mu.Unlock()

	log.Printf("[Room %s] Client joined: %s, total: %d", boardKey, client.ConnID, total)

	if h.presenceMgr != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.presenceMgr.SetViewer(ctx, boardKey, client.ConnID); err != nil {
			log.Printf("[Room %s] Failed to set presence: %v", boardKey, err)
		}
	}

	return room
}

// Leave 클라이언트를 룸에서 제거. 룸이 비면 허브에서 치운다.
// 빈 룸 판정과 맵 삭제는 Join과 같은 허브 락 아래에서 이루어진다.
func (h *CanvasHub) Leave(boardKey string, client *CanvasClient) {
	h.mu.Lock()
	room, exists := h.rooms[boardKey]
	if !exists {
		h.mu.Unlock()
		return
	}

	room.mu.Lock()
	delete(room.clients, client.ConnID)
	remaining := len(room.clients)
	room.mu.Unlock()

	if remaining == 0 {
		delete(h.rooms, boardKey)
		log.Printf("[CanvasHub] Removed room: %s", boardKey)
	}
	h.mu.Unlock()

	log.Printf("[Room %s] Client left: %s, remaining: %d", boardKey, client.ConnID, remaining)

	if h.presenceMgr != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.presenceMgr.ClearViewer(ctx, boardKey, client.ConnID); err != nil {
			log.Printf("[Room %s] Failed to clear presence: %v", boardKey, err)
		}
	}
}

// RoomSize 룸의 현재 접속 수 (presence 미사용 시 대체값)
func (h *CanvasHub) RoomSize(boardKey string) int {
	h.mu.RLock()
	room, exists := h.rooms[boardKey]
	h.mu.RUnlock()

	if !exists {
		return 0
	}

	room.mu.RLock()
	defer room.mu.RUnlock()
	return len(room.clients)
}

// ViewerCount presence 기반 접속자 수. Redis가 없으면 룸 크기로 대신한다.
func (h *CanvasHub) ViewerCount(ctx context.Context, boardKey string) int {
	if h.presenceMgr != nil {
		if count, err := h.presenceMgr.CountViewers(ctx, boardKey); err == nil {
			return count
		}
	}
	return h.RoomSize(boardKey)
}

// BroadcastNewMessage 커밋 완료된 메시지를 해당 보드 룸 전체에 전송.
// HTTP 핸들러가 트랜잭션 커밋 후에만 호출한다.
func (h *CanvasHub) BroadcastNewMessage(boardKey string, msg *model.CanvasMessage) {
	h.mu.RLock()
	room, exists := h.rooms[boardKey]
	h.mu.RUnlock()

	if !exists {
		return
	}

	event := CanvasEvent{
		Type:     "new_message",
		BoardKey: boardKey,
		Message:  msg,
	}

	room.broadcast(&event)
}

// BroadcastPresence 접속자 수 이벤트 전송
func (h *CanvasHub) BroadcastPresence(ctx context.Context, boardKey string) {
	h.mu.RLock()
	room, exists := h.rooms[boardKey]
	h.mu.RUnlock()

	if !exists {
		return
	}

	event := CanvasEvent{
		Type:     "presence",
		BoardKey: boardKey,
		Viewers:  h.ViewerCount(ctx, boardKey),
	}

	room.broadcast(&event)
}

// Heartbeat 접속 TTL 연장
func (h *CanvasHub) Heartbeat(ctx context.Context, boardKey, connID string) {
	if h.presenceMgr == nil {
		return
	}
	if err := h.presenceMgr.Heartbeat(ctx, boardKey, connID); err != nil {
		log.Printf("[Room %s] Failed to refresh presence: %v", boardKey, err)
	}
}

// =============================================================================
// Room Methods
// =============================================================================

// broadcast 룸의 모든 클라이언트에게 이벤트 전송
func (r *BoardRoom) broadcast(event *CanvasEvent) {
	r.mu.RLock()
	clients := make([]*CanvasClient, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Room %s] Failed to marshal event: %v", r.Key, err)
		return
	}

	for _, client := range clients {
		client.Send(data)
	}
}

// Send 직렬화된 이벤트를 단일 클라이언트에 전송 (쓰기 직렬화)
func (c *CanvasClient) Send(data []byte) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[Canvas] Failed to send to client %s: %v", c.ConnID, err)
	}
}

// SendEvent 이벤트를 직렬화해 단일 클라이언트에 전송
func (c *CanvasClient) SendEvent(event *CanvasEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Canvas] Failed to marshal event: %v", err)
		return
	}
	c.Send(data)
}
