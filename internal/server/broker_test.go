package server

import (
	"encoding/json"
	"testing"

	"github.com/eduplay/gameboard/internal/jeopardy"
)

func TestBrokerPublishReachesSessionSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("sess-1")
	other := b.Subscribe("sess-2")

	b.Publish("sess-1", Event{Type: "clue_selected", ClueID: "clue-0-0"})

	select {
	case data := <-ch:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != "clue_selected" || ev.ClueID != "clue-0-0" {
			t.Errorf("unexpected event: %+v", ev)
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	select {
	case <-other:
		t.Fatal("event leaked to another session's subscriber")
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("sess-1")
	b.Unsubscribe("sess-1", ch)

	b.Publish("sess-1", Event{Type: "session_started"})

	select {
	case <-ch:
		t.Fatal("unsubscribed channel still receives")
	default:
	}
}

func TestRegistryRemoveIsOnce(t *testing.T) {
	reg := NewRegistry()

	sess, err := jeopardy.New(demoDefinition())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	ls := reg.Create("game-1", "Demo", sess)

	if got, ok := reg.Get(ls.ID); !ok || got != ls {
		t.Fatal("expected to look the session back up")
	}
	if _, ok := reg.Remove(ls.ID); !ok {
		t.Fatal("first remove must report true")
	}
	if _, ok := reg.Remove(ls.ID); ok {
		t.Fatal("second remove must report false")
	}
	if _, ok := reg.Get(ls.ID); ok {
		t.Fatal("removed session still resolvable")
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Len())
	}
}
