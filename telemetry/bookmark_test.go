package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_RecordPace(t *testing.T) {
	bd := NewBookmarkDetector(5, 3)

	// First finish sets the record silently
	if got := bd.Check(SeasonStats{Season: 1, Heats: 1, BestTick: 400}); hasBookmark(got, BookmarkRecordPace) {
		t.Error("first finish should not be a record")
	}
	if got := bd.Check(SeasonStats{Season: 2, Heats: 1, BestTick: 420}); hasBookmark(got, BookmarkRecordPace) {
		t.Error("slower finish should not be a record")
	}
	if got := bd.Check(SeasonStats{Season: 3, Heats: 1, BestTick: 380}); !hasBookmark(got, BookmarkRecordPace) {
		t.Error("expected record_pace bookmark")
	}
}

func TestBookmarkDetector_Dynasty(t *testing.T) {
	bd := NewBookmarkDetector(5, 3)

	champs := []string{"a", "b", "b", "b", "b"}
	fired := 0
	for i, id := range champs {
		got := bd.Check(SeasonStats{Season: i + 1, Heats: 1, ChampionID: id, Champion: id})
		if hasBookmark(got, BookmarkDynasty) {
			fired++
			if i != 3 {
				t.Errorf("dynasty fired at season %d, want 4", i+1)
			}
		}
	}
	if fired != 1 {
		t.Errorf("dynasty fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_Stalemate(t *testing.T) {
	bd := NewBookmarkDetector(5, 3)

	if got := bd.Check(SeasonStats{Season: 1, Heats: 4, Draws: 3}); hasBookmark(got, BookmarkStalemate) {
		t.Error("partial draws should not be a stalemate")
	}
	if got := bd.Check(SeasonStats{Season: 2, Heats: 4, Draws: 4}); !hasBookmark(got, BookmarkStalemate) {
		t.Error("expected stalemate bookmark")
	}
}

func TestBookmarkDetector_Converging(t *testing.T) {
	bd := NewBookmarkDetector(5, 3)

	sims := []float64{0.5, 0.95, 0.97, 0.6, 0.92}
	var fired []int
	for i, s := range sims {
		if hasBookmark(bd.Check(SeasonStats{Season: i + 1, Active: 6, Similarity: s}), BookmarkConverging) {
			fired = append(fired, i+1)
		}
	}
	if len(fired) != 2 || fired[0] != 2 || fired[1] != 5 {
		t.Errorf("converging fired at %v, want [2 5]", fired)
	}
}

func TestBookmarkDetector_History(t *testing.T) {
	bd := NewBookmarkDetector(3, 3)
	for i := 1; i <= 5; i++ {
		bd.Check(SeasonStats{Season: i})
	}

	h := bd.History()
	if len(h) != 3 {
		t.Fatalf("history len = %d, want 3", len(h))
	}
	for i, want := range []int{3, 4, 5} {
		if h[i].Season != want {
			t.Errorf("history[%d] = season %d, want %d", i, h[i].Season, want)
		}
	}
}
