package store

// migration is a single schema change, applied once in version order.
type migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "sessions and turns",
		SQL: `
			CREATE TABLE sessions (
				id         TEXT PRIMARY KEY,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			);

			CREATE TABLE turns (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
				role       TEXT NOT NULL,
				content    TEXT NOT NULL,
				created_at TEXT NOT NULL
			);

			CREATE INDEX idx_turns_session ON turns(session_id, id);
		`,
	},
}
