package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"halloffame-backend/internal/model"
)

// CanvasWSHandler 캔버스 보드 WebSocket 핸들러.
// 연결별 상태는 disconnected → connected → joined(board) → receiving 순으로만 움직인다.
type CanvasWSHandler struct {
	db  *gorm.DB
	hub *CanvasHub
}

// clientEvent 클라이언트 → 서버 이벤트
type clientEvent struct {
	Type     string `json:"type"` // join, ping
	BoardKey string `json:"board_key,omitempty"`
}

// NewCanvasWSHandler CanvasWSHandler 생성
func NewCanvasWSHandler(db *gorm.DB, hub *CanvasHub) *CanvasWSHandler {
	return &CanvasWSHandler{db: db, hub: hub}
}

// HandleWebSocket WebSocket 연결 처리
func (h *CanvasWSHandler) HandleWebSocket(c *websocket.Conn) {
	client := &CanvasClient{
		ConnID: uuid.NewString(),
		Conn:   c,
	}

	// 현재 join된 보드 키 (미가입이면 빈 문자열)
	joinedKey := ""

	log.Printf("[Canvas] Client connected: %s", client.ConnID)

	// 연결 해제 시 정리 — 룸 멤버십은 연결 수명으로만 유지된다
	defer func() {
		if joinedKey != "" {
			h.leaveBoard(joinedKey, client)
		}
		c.Close()
		log.Printf("[Canvas] Client disconnected: %s", client.ConnID)
	}()

	// 메시지 수신 루프
	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			break
		}

		var event clientEvent
		if err := json.Unmarshal(msgBytes, &event); err != nil {
			continue
		}

		switch event.Type {
		case "join":
			joinedKey = h.handleJoin(client, joinedKey, event.BoardKey)
		case "ping":
			if joinedKey != "" {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				h.hub.Heartbeat(ctx, joinedKey, client.ConnID)
				cancel()
			}
		}
	}
}

// resolveJoin join 요청 키 검증 + 보드 조회.
// 실패 시 보낼 에러 이벤트를 돌려준다 — 조회 실패는 "메시지 0건"과 다른 에러다.
func (h *CanvasWSHandler) resolveJoin(requestedKey string) (*model.Board, *CanvasEvent) {
	boardKey := strings.ToUpper(strings.TrimSpace(requestedKey))
	if boardKey == "" {
		return nil, &CanvasEvent{Type: "error", Error: "board_key is required"}
	}

	var board model.Board
	if err := h.db.Where("board_key = ?", boardKey).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &CanvasEvent{Type: "error", BoardKey: boardKey, Error: "board not found"}
		}
		log.Printf("[Canvas] Board lookup failed for %s: %v", boardKey, err)
		return nil, &CanvasEvent{Type: "error", BoardKey: boardKey, Error: "board lookup failed"}
	}

	return &board, nil
}

// handleJoin join 이벤트 처리. 성공하면 새 보드 키, 실패하면 기존 키를 반환한다.
func (h *CanvasWSHandler) handleJoin(client *CanvasClient, currentKey, requestedKey string) string {
	board, errEvent := h.resolveJoin(requestedKey)
	if errEvent != nil {
		client.SendEvent(errEvent)
		return currentKey
	}
	boardKey := board.BoardKey

	// 재가입은 룸 전환: 기존 룸에서 먼저 빠진다
	if currentKey != "" && currentKey != boardKey {
		h.leaveBoard(currentKey, client)
	}

	// 등록이 스냅샷 적재보다 먼저다. 등록 전에 읽으면 그 사이 커밋된
	// 메시지가 스냅샷에도 브로드캐스트에도 없이 사라진다. 등록 후에 읽으면
	// 겹친 메시지는 중복으로만 나타난다 — 클라이언트가 id로 걸러낸다.
	h.hub.Join(boardKey, client)

	messages, err := h.loadSnapshot(boardKey, board.ID)
	if err != nil {
		log.Printf("[Canvas] Snapshot load failed for %s: %v", boardKey, err)
		h.leaveBoard(boardKey, client)
		client.SendEvent(&CanvasEvent{Type: "error", BoardKey: boardKey, Error: "failed to load board history"})
		return ""
	}

	// 스냅샷은 요청한 연결에만 1회 전송
	client.SendEvent(&CanvasEvent{
		Type:     "history",
		BoardKey: boardKey,
		Messages: messages,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	h.hub.BroadcastPresence(ctx, boardKey)
	cancel()

	return boardKey
}

// loadSnapshot 보드 메시지 스냅샷 조회 (Redis read-through, DB fallback)
func (h *CanvasWSHandler) loadSnapshot(boardKey string, boardID int64) ([]model.CanvasMessage, error) {
	if h.hub.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if messages, ok, err := h.hub.redisClient.LoadMessages(ctx, boardKey); err == nil && ok {
			return messages, nil
		}
	}

	var messages []model.CanvasMessage
	if err := h.db.Where("board_id = ?", boardID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	if h.hub.redisClient != nil {
		go func(snapshot []model.CanvasMessage) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := h.hub.redisClient.StoreMessages(ctx, boardKey, snapshot); err != nil {
				log.Printf("[Canvas] Failed to warm snapshot cache for %s: %v", boardKey, err)
			}
		}(messages)
	}

	return messages, nil
}

// leaveBoard 룸 이탈 + presence 갱신 브로드캐스트
func (h *CanvasWSHandler) leaveBoard(boardKey string, client *CanvasClient) {
	h.hub.Leave(boardKey, client)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	h.hub.BroadcastPresence(ctx, boardKey)
	cancel()
}
