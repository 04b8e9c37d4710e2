package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"halloffame-backend/internal/model"
)

// 보드별 메시지 리스트 TTL. 만료되면 다음 join 때 DB에서 다시 채운다.
const boardMessagesTTL = 24 * time.Hour

// RedisClient 보드 메시지 스냅샷 캐시
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient Redis 클라이언트 생성
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("[Redis] Connected to %s", addr)
	return &RedisClient{client: client}, nil
}

func boardMessagesKey(boardKey string) string {
	return "board:" + boardKey + ":messages"
}

// AppendMessage 커밋 완료된 메시지를 보드 리스트 끝에 추가.
// 리스트가 비어 있으면(캐시 미적재) 건너뛴다 — join 시 DB 전체를 싣기 때문에
// 빈 리스트에 덧붙이면 과거 메시지가 빠진 스냅샷이 만들어진다.
func (r *RedisClient) AppendMessage(ctx context.Context, boardKey string, msg *model.CanvasMessage) error {
	key := boardMessagesKey(boardKey)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := r.client.RPush(ctx, key, data).Err(); err != nil {
		log.Printf("[Redis] Failed to append board message: %v", err)
		return err
	}

	r.client.Expire(ctx, key, boardMessagesTTL)
	return nil
}

// LoadMessages 보드 스냅샷 조회. 캐시 미적재면 (nil, false, nil)을 반환한다.
func (r *RedisClient) LoadMessages(ctx context.Context, boardKey string) ([]model.CanvasMessage, bool, error) {
	key := boardMessagesKey(boardKey)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}
	if exists == 0 {
		return nil, false, nil
	}

	results, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, false, err
	}

	messages := make([]model.CanvasMessage, 0, len(results))
	for _, data := range results {
		var msg model.CanvasMessage
		if err := json.Unmarshal([]byte(data), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}

	return messages, true, nil
}

// StoreMessages DB에서 읽은 전체 스냅샷을 캐시에 적재 (read-through 채움)
func (r *RedisClient) StoreMessages(ctx context.Context, boardKey string, messages []model.CanvasMessage) error {
	key := boardMessagesKey(boardKey)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	for i := range messages {
		data, err := json.Marshal(&messages[i])
		if err != nil {
			continue
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.Expire(ctx, key, boardMessagesTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[Redis] Failed to store board snapshot: %v", err)
		return err
	}
	return nil
}

// Invalidate 보드 스냅샷 캐시 제거
func (r *RedisClient) Invalidate(ctx context.Context, boardKey string) error {
	return r.client.Del(ctx, boardMessagesKey(boardKey)).Err()
}

// Raw presence 등 다른 컴포넌트에서 같은 연결을 재사용할 때 사용
func (r *RedisClient) Raw() *redis.Client {
	return r.client
}

// Close 연결 종료
func (r *RedisClient) Close() error {
	return r.client.Close()
}
