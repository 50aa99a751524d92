package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teslashibe/go-firebot/pkg/mission"
)

// fakeMission is a recording Mission for handler tests.
type fakeMission struct {
	alarmCalls int
	alarmErr   error
}

func (f *fakeMission) Status() mission.Status {
	return mission.Status{RunID: "run-1", State: "wander", Ticks: 7}
}

func (f *fakeMission) Config() mission.Config {
	return mission.DefaultConfig()
}

func (f *fakeMission) RaiseAlarm() error {
	f.alarmCalls++
	return f.alarmErr
}

func TestHandleStatus(t *testing.T) {
	s := NewServer("0", &fakeMission{})

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code: got %d, want 200", resp.StatusCode)
	}

	var st mission.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.State != "wander" || st.Ticks != 7 {
		t.Errorf("snapshot: got %+v, want wander with 7 ticks", st)
	}
}

func TestHandleConfig(t *testing.T) {
	s := NewServer("0", &fakeMission{})

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/config", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var cfg map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg["wall_follow_step_mm"] != 125.0 {
		t.Errorf("config: got %v, want wall_follow_step_mm 125", cfg["wall_follow_step_mm"])
	}
}

func TestHandleAlarm(t *testing.T) {
	fake := &fakeMission{}
	s := NewServer("0", fake)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/alarm", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status code: got %d, want 200", resp.StatusCode)
	}
	if fake.alarmCalls != 1 {
		t.Errorf("alarm calls: got %d, want 1", fake.alarmCalls)
	}
}

func TestHandleAlarm_HubFailure(t *testing.T) {
	fake := &fakeMission{alarmErr: errors.New("hub daemon gone")}
	s := NewServer("0", fake)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodPost, "/api/alarm", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status code: got %d, want 502", resp.StatusCode)
	}
}

func TestPublish_BuffersForLateJoiners(t *testing.T) {
	s := NewServer("0", &fakeMission{})

	s.Publish(mission.Event{Kind: mission.EventTransition, From: "wander", To: "wall_following"})
	s.Publish(mission.Event{Kind: mission.EventDetection, Detail: "flame"})

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/events", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var events []mission.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	if events[0].Kind != mission.EventTransition || events[1].Detail != "flame" {
		t.Errorf("events: got %+v", events)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer("0", &fakeMission{})

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code: got %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) == 0 {
		t.Error("metrics: empty body")
	}
}
