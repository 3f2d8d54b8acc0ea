package network

import (
	"os"
	"testing"

	"stealth-server/pkg/api"
	"stealth-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcastRoomOnlyReachesRoom(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a", 1)
	other := b.Register("b", 2)

	b.BroadcastRoom(1, api.ServerResponse{Type: "UPDATE", Tick: 7})

	select {
	case msg := <-a:
		if msg.Tick != 7 || msg.MyClientID != "a" {
			t.Errorf("got %+v", msg)
		}
	default:
		t.Fatal("subscriber of room 1 got nothing")
	}
	select {
	case msg := <-other:
		t.Errorf("subscriber of room 2 got %+v", msg)
	default:
	}
}

func TestRegisterReplacesChannel(t *testing.T) {
	b := NewBroadcaster()
	first := b.Register("a", 1)
	second := b.Register("a", 3)

	if _, ok := <-first; ok {
		t.Error("old channel must be closed")
	}
	if room, _ := b.RoomOf("a"); room != 3 {
		t.Errorf("room = %d, want 3", room)
	}
	if b.SubscriberCount() != 1 {
		t.Errorf("count = %d", b.SubscriberCount())
	}

	b.Unregister("a")
	if _, ok := <-second; ok {
		t.Error("channel must be closed after Unregister")
	}
	if b.HasSubscriber("a") {
		t.Error("subscriber still registered")
	}
}

func TestSlowSubscriberDropsFrames(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow", 1)

	for i := 0; i < b.bufferSize+10; i++ {
		b.BroadcastRoom(1, api.ServerResponse{Tick: i})
	}
	if len(ch) != b.bufferSize {
		t.Errorf("buffered = %d, want %d", len(ch), b.bufferSize)
	}
	if b.RoomSubscriberCount(1) != 1 || b.RoomSubscriberCount(2) != 0 {
		t.Error("room counts are wrong")
	}
}
