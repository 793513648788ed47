package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("game_code", "home_team", "away_team").
		From("games").
		Where(Eq("week_id", 3), IsNull("deleted_at")).
		OrderBy("game_date ASC").
		Limit(16).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_code, home_team, away_team FROM games WHERE week_id = $1 AND deleted_at IS NULL ORDER BY game_date ASC LIMIT 16"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderIn(t *testing.T) {
	query, args, err := Select("game_id", "winner_team").
		From("game_results").
		Where(In("game_id", []any{int64(101), int64(102)})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_id, winner_team FROM game_results WHERE game_id IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	query, args, err := Select("game_id").
		From("game_results").
		Where(In("game_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_id FROM game_results WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("user_week_picks_status").
		Columns("user_id", "week", "has_picks").
		Values(int64(7), 2, true).
		Suffix("ON CONFLICT (user_id, week) DO UPDATE SET has_picks = EXCLUDED.has_picks").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO user_week_picks_status (user_id, week, has_picks) VALUES ($1, $2, $3) ON CONFLICT (user_id, week) DO UPDATE SET has_picks = EXCLUDED.has_picks"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type weekRow struct {
		ID        int    `db:"id"`
		StartDate string `db:"start_date"`
		Skipped   string `db:"-"`
	}

	query, args, err := InsertModel("weeks", weekRow{ID: 1, StartDate: "2025-09-04", Skipped: "x"}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO weeks (id, start_date) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 1 || args[1] != "2025-09-04" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("user_picks").
		Set("is_correct", true).
		SetExpr("updated_at", "NOW()").
		Where(Eq("game_id", int64(101)), Expr("user_id = ANY(?)", []int64{1, 2})).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE user_picks SET is_correct = $1, updated_at = NOW() WHERE game_id = $2 AND user_id = ANY($3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
