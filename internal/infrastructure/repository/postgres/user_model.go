package postgres

import "time"

type userTableModel struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}

type grandTotalRowModel struct {
	UserID   int64  `db:"user_id"`
	Username string `db:"username"`
	Total    int    `db:"total"`
}
