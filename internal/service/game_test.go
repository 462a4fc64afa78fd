package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/toolflix/backend/internal/dto"
	apperrors "github.com/toolflix/backend/internal/errors"
	"github.com/toolflix/backend/internal/repository"
)

func newGameFixture(t *testing.T) (*GameService, *StatsService, func(d time.Duration)) {
	t.Helper()

	db := newTestDB(t)
	clk := newTestClock()

	games := NewGameService(repository.NewGameRepository(db), newDisabledCache(), clk, newTestIDs("g"))
	stats := NewStatsService(repository.NewStatsRepository(db))

	return games, stats, clk.Advance
}

func TestGameUpsertByLink(t *testing.T) {
	games, _, advance := newGameFixture(t)
	ctx := context.Background()

	first, err := games.Upsert(ctx, &dto.UpsertGameRequest{
		Title: "Asteroid Run",
		Link:  "https://play.example/asteroid",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	advance(time.Minute)

	// Same link updates in place instead of adding a row
	_, err = games.Upsert(ctx, &dto.UpsertGameRequest{
		Title:    "Asteroid Run Deluxe",
		Link:     "https://play.example/asteroid",
		Category: "arcade",
		Premium:  true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := games.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].Title != "Asteroid Run Deluxe" || !list[0].Premium || list[0].Category != "arcade" {
		t.Errorf("updated entry = %+v", list[0])
	}
	if list[0].ID != first.ID {
		t.Errorf("id changed on upsert: %s -> %s", first.ID, list[0].ID)
	}
}

func TestGameListNewestFirst(t *testing.T) {
	games, _, advance := newGameFixture(t)
	ctx := context.Background()

	for _, g := range []string{"a", "b", "c"} {
		if _, err := games.Upsert(ctx, &dto.UpsertGameRequest{Title: g, Link: "https://x/" + g}); err != nil {
			t.Fatalf("upsert %s: %v", g, err)
		}
		advance(time.Minute)
	}

	list, err := games.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0].Title != "c" || list[2].Title != "a" {
		t.Errorf("order = [%s %s %s], want newest first", list[0].Title, list[1].Title, list[2].Title)
	}
}

func TestGameUpsertRejectsBlankFields(t *testing.T) {
	games, _, _ := newGameFixture(t)
	ctx := context.Background()

	for _, req := range []dto.UpsertGameRequest{
		{Title: "  ", Link: "https://x/a"},
		{Title: "a", Link: "  "},
	} {
		if _, err := games.Upsert(ctx, &req); !errors.Is(err, apperrors.ErrGameInvalid) {
			t.Errorf("req %+v: got %v, want INVALID_INPUT", req, err)
		}
	}
}

func TestGameDeleteAndClear(t *testing.T) {
	games, _, _ := newGameFixture(t)
	ctx := context.Background()

	for _, g := range []string{"a", "b"} {
		if _, err := games.Upsert(ctx, &dto.UpsertGameRequest{Title: g, Link: "https://x/" + g}); err != nil {
			t.Fatalf("upsert %s: %v", g, err)
		}
	}

	if err := games.Delete(ctx, "https://x/a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting a missing link is a no-op
	if err := games.Delete(ctx, "https://x/missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	list, _ := games.List(ctx)
	if len(list) != 1 || list[0].Link != "https://x/b" {
		t.Fatalf("after delete: %+v", list)
	}

	if err := games.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	list, _ = games.List(ctx)
	if len(list) != 0 {
		t.Errorf("after clear: %d entries remain", len(list))
	}
}

func TestVisitCounter(t *testing.T) {
	_, stats, _ := newGameFixture(t)
	ctx := context.Background()

	// Unset counter reads as zero
	if v, err := stats.Visits(ctx); err != nil || v != 0 {
		t.Fatalf("initial visits = %d, %v; want 0, nil", v, err)
	}

	for want := int64(1); want <= 3; want++ {
		got, err := stats.RegisterVisit(ctx)
		if err != nil {
			t.Fatalf("visit %d: %v", want, err)
		}
		if got != want {
			t.Errorf("visit count = %d, want %d", got, want)
		}
	}

	if v, _ := stats.Visits(ctx); v != 3 {
		t.Errorf("final visits = %d, want 3", v)
	}
}
