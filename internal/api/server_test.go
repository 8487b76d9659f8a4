package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"encore/internal/balance"
	"encore/internal/config"
	"encore/internal/game"
	"encore/internal/store/memory"
)

func testServer() *Server {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.New()
	svc := game.New(store, balance.Default(), logger)
	return New(config.Config{}, logger, svc, store)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return rec, out
}

func TestGameLifecycle(t *testing.T) {
	h := testServer().Handler()

	rec, created := doJSON(t, h, http.MethodPost, "/v1/games", map[string]any{"seed": 42})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: status %d: %s", rec.Code, rec.Body.String())
	}
	gameID, _ := created["id"].(string)
	if gameID == "" {
		t.Fatalf("create game: no id in %v", created)
	}

	rec, _ = doJSON(t, h, http.MethodPost, "/v1/games/"+gameID+"/artists", map[string]any{
		"name":        "Vera Vale",
		"archetype":   "visionary",
		"talent":      65,
		"work_ethic":  60,
		"mood":        55,
		"loyalty":     50,
		"energy":      75,
		"popularity":  12,
		"weekly_cost": 400,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("sign artist: status %d: %s", rec.Code, rec.Body.String())
	}

	rec, advanced := doJSON(t, h, http.MethodPost, "/v1/games/"+gameID+"/advance", map[string]any{
		"actions": []map[string]any{
			{"kind": "artist_dialogue"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("advance: status %d: %s", rec.Code, rec.Body.String())
	}
	state, _ := advanced["state"].(map[string]any)
	if state == nil || state["turn"].(float64) != 2 {
		t.Fatalf("advance: state %v, want turn 2", state)
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/v1/games/"+gameID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get game: status %d", rec.Code)
	}
}

func TestGameNotFound(t *testing.T) {
	h := testServer().Handler()
	rec, _ := doJSON(t, h, http.MethodGet, "/v1/games/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAdvanceCompletedCampaignConflicts(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.New()
	svc := game.New(store, balance.Default(), logger)
	server := New(config.Config{}, logger, svc, store)

	state := svc.NewGame(1)
	state.CampaignCompleted = true
	if err := store.PutState(context.Background(), state); err != nil {
		t.Fatal(err)
	}

	rec, _ := doJSON(t, server.Handler(), http.MethodPost, "/v1/games/"+state.ID+"/advance", map[string]any{})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestTourPreview(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.New()
	svc := game.New(store, balance.Default(), logger)
	server := New(config.Config{}, logger, svc, store)

	state := svc.NewGame(1)
	state.Reputation = 20
	state.VenueTier = "clubs"
	if err := store.PutState(context.Background(), state); err != nil {
		t.Fatal(err)
	}
	artist := game.Artist{ID: "a1", GameID: state.ID, Popularity: 30}
	if err := store.CreateArtist(context.Background(), artist); err != nil {
		t.Fatal(err)
	}

	rec, out := doJSON(t, server.Handler(), http.MethodPost, "/v1/games/"+state.ID+"/tour", map[string]any{
		"artist_id":        "a1",
		"venue_capacity":   200,
		"cities":           5,
		"marketing_budget": 10_000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if out["marketing_per_city"].(float64) != 2_000 {
		t.Fatalf("marketing per city = %v, want 2000", out["marketing_per_city"])
	}
	if out["net_profit"].(float64) != out["total_revenue"].(float64)-out["total_costs"].(float64) {
		t.Fatalf("net profit mismatch: %v", out)
	}
}
