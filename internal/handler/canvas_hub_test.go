package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"halloffame-backend/internal/model"
)

// stubConn 프레임을 기록하는 가짜 커넥션
type stubConn struct {
	mu      sync.Mutex
	frames  [][]byte
	onWrite func() // nil 허용, 프레임 기록 직전 호출
}

func (s *stubConn) WriteMessage(messageType int, data []byte) error {
	if s.onWrite != nil {
		s.onWrite()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, append([]byte(nil), data...))
	return nil
}

func (s *stubConn) events(t *testing.T) []CanvasEvent {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]CanvasEvent, 0, len(s.frames))
	for _, frame := range s.frames {
		var ev CanvasEvent
		require.NoError(t, json.Unmarshal(frame, &ev))
		events = append(events, ev)
	}
	return events
}

func fakeClient(id string) *CanvasClient {
	return &CanvasClient{ConnID: id, Conn: &stubConn{}}
}

func TestGetOrCreateRoomIdempotent(t *testing.T) {
	hub := NewCanvasHub(nil, nil)

	room1 := hub.GetOrCreateRoom("ALUMNI-WALL")
	room2 := hub.GetOrCreateRoom("ALUMNI-WALL")

	require.NotNil(t, room1)
	assert.Same(t, room1, room2)
	assert.Equal(t, "ALUMNI-WALL", room1.Key)
}

func TestJoinLeaveRoomSize(t *testing.T) {
	hub := NewCanvasHub(nil, nil)

	c1 := fakeClient("conn-1")
	c2 := fakeClient("conn-2")

	hub.Join("ALUMNI-WALL", c1)
	hub.Join("ALUMNI-WALL", c2)
	assert.Equal(t, 2, hub.RoomSize("ALUMNI-WALL"))

	hub.Leave("ALUMNI-WALL", c1)
	assert.Equal(t, 1, hub.RoomSize("ALUMNI-WALL"))

	// 마지막 클라이언트가 나가면 룸 자체가 사라진다
	hub.Leave("ALUMNI-WALL", c2)
	assert.Equal(t, 0, hub.RoomSize("ALUMNI-WALL"))

	hub.mu.RLock()
	_, exists := hub.rooms["ALUMNI-WALL"]
	hub.mu.RUnlock()
	assert.False(t, exists)
}

func TestLeaveUnknownRoomNoop(t *testing.T) {
	hub := NewCanvasHub(nil, nil)
	hub.Leave("NO-SUCH-BOARD", fakeClient("conn-x"))
	assert.Equal(t, 0, hub.RoomSize("NO-SUCH-BOARD"))
}

func TestRoomsAreIsolated(t *testing.T) {
	hub := NewCanvasHub(nil, nil)

	a := fakeClient("a")
	b := fakeClient("b")
	hub.Join("ALUMNI-WALL", a)
	hub.Join("CLASS-OF-99", b)

	assert.Equal(t, 1, hub.RoomSize("ALUMNI-WALL"))
	assert.Equal(t, 1, hub.RoomSize("CLASS-OF-99"))

	// 브로드캐스트는 해당 보드 룸에만 닿는다
	hub.BroadcastNewMessage("ALUMNI-WALL", &model.CanvasMessage{ID: 1, Text: "hello"})

	assert.Len(t, a.Conn.(*stubConn).events(t), 1)
	assert.Empty(t, b.Conn.(*stubConn).events(t))
}

func TestBroadcastReachesAllMembers(t *testing.T) {
	hub := NewCanvasHub(nil, nil)

	a := fakeClient("a")
	b := fakeClient("b")
	hub.Join("ALUMNI-WALL", a)
	hub.Join("ALUMNI-WALL", b)

	msg := &model.CanvasMessage{ID: 7, BoardID: 1, X: 10, Y: 20, Text: "hello"}
	hub.BroadcastNewMessage("ALUMNI-WALL", msg)

	for _, client := range []*CanvasClient{a, b} {
		events := client.Conn.(*stubConn).events(t)
		require.Len(t, events, 1)
		assert.Equal(t, "new_message", events[0].Type)
		require.NotNil(t, events[0].Message)
		assert.Equal(t, int64(7), events[0].Message.ID)
	}
}

// 마지막 이탈자의 빈 룸 제거와 새 합류가 겹쳐도 합류자의 멤버십은 남아야 한다.
func TestJoinSurvivesConcurrentChurn(t *testing.T) {
	hub := NewCanvasHub(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c := fakeClient(fmt.Sprintf("churn-%d-%d", n, j))
				hub.Join("ALUMNI-WALL", c)
				hub.Leave("ALUMNI-WALL", c)
			}
		}(i)
	}

	stay := fakeClient("stay")
	hub.Join("ALUMNI-WALL", stay)
	wg.Wait()

	hub.BroadcastNewMessage("ALUMNI-WALL", &model.CanvasMessage{ID: 1, Text: "still here"})

	events := stay.Conn.(*stubConn).events(t)
	require.Len(t, events, 1)
	assert.Equal(t, "new_message", events[0].Type)
}

func TestViewerCountFallsBackToRoomSize(t *testing.T) {
	hub := NewCanvasHub(nil, nil) // presence 없음 → 룸 크기 사용

	hub.Join("ALUMNI-WALL", fakeClient("a"))
	hub.Join("ALUMNI-WALL", fakeClient("b"))

	assert.Equal(t, 2, hub.ViewerCount(context.Background(), "ALUMNI-WALL"))
	assert.Equal(t, 0, hub.ViewerCount(context.Background(), "EMPTY-BOARD"))
}
