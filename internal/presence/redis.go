package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 접속 키 TTL. 하트비트가 끊기면 자동 소멸한다. (Heartbeat는 30초마다)
const viewerTTL = 60 * time.Second

// Manager 보드별 접속자 presence 관리자.
// 연결 단위 키(presence:board:<KEY>:<connID>)에 TTL을 걸어 두고,
// 접속자 수는 키 개수로 센다. 서버 재시작 후 남는 상태가 없다.
type Manager struct {
	client *redis.Client
}

// NewManager 생성자. 기존 Redis 연결을 재사용한다.
func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

func viewerKey(boardKey, connID string) string {
	return fmt.Sprintf("presence:board:%s:%s", boardKey, connID)
}

func viewerPattern(boardKey string) string {
	return fmt.Sprintf("presence:board:%s:*", boardKey)
}

// SetViewer 접속 등록 (join 시)
func (m *Manager) SetViewer(ctx context.Context, boardKey, connID string) error {
	return m.client.Set(ctx, viewerKey(boardKey, connID), time.Now().Unix(), viewerTTL).Err()
}

// Heartbeat 생존 신고 (TTL 연장)
func (m *Manager) Heartbeat(ctx context.Context, boardKey, connID string) error {
	return m.client.Expire(ctx, viewerKey(boardKey, connID), viewerTTL).Err()
}

// ClearViewer 접속 해제 (leave/disconnect 시)
func (m *Manager) ClearViewer(ctx context.Context, boardKey, connID string) error {
	return m.client.Del(ctx, viewerKey(boardKey, connID)).Err()
}

// CountViewers 보드 접속자 수 조회
func (m *Manager) CountViewers(ctx context.Context, boardKey string) (int, error) {
	var count int
	var cursor uint64

	for {
		keys, next, err := m.client.Scan(ctx, cursor, viewerPattern(boardKey), 100).Result()
		if err != nil {
			return 0, err
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return count, nil
}
