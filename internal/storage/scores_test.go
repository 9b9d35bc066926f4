package storage

import "testing"

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		player string
		score  int
		level  int
	}{
		{"ana", 100, 1},
		{"bo", 50, 1},
		{"ana", 2200, 3},
	} {
		if _, err := store.SaveScore(s.player, s.score, s.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 2200 || scores[0].Player != "ana" || scores[0].Level != 3 {
		t.Errorf("Expected top entry ana/2200/3, got %+v", scores[0])
	}
	if scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("ana", (i+1)*100, 1)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("ana")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for new player, got %d", high)
	}

	store.SaveScore("ana", 100, 1)
	store.SaveScore("ana", 300, 1)
	store.SaveScore("bo", 900, 2)

	high, err = store.HighScore("ana")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestSessions(t *testing.T) {
	store := openTestStore(t)

	first, err := store.StartSession("ana")
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	second, err := store.StartSession("ana")
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if first == second || len(first) != 36 {
		t.Errorf("session ids %q and %q, expected distinct UUIDs", first, second)
	}

	if err := store.EndSession(first, 1200, 2); err != nil {
		t.Fatalf("EndSession() failed: %v", err)
	}
	if err := store.EndSession("missing", 0, 1); err == nil {
		t.Error("EndSession() on unknown id succeeded")
	}

	sessions, err := store.RecentSessions("ana", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != second || !sessions[0].EndedAt.IsZero() {
		t.Errorf("newest session = %+v, expected open session %s", sessions[0], second)
	}
	if sessions[1].FinalScore != 1200 || sessions[1].FinalLevel != 2 || sessions[1].EndedAt.IsZero() {
		t.Errorf("closed session = %+v, expected score 1200 level 2", sessions[1])
	}
}
