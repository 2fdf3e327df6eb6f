package storage

import (
	"database/sql"
	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS renders(
		symbol TEXT, time_range TEXT, kind TEXT, ts INTEGER
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

// SaveRender records one served chart so usage analytics can break traffic
// down by kind.
func (s *Store) SaveRender(symbol, timeRange, kind string, ts int64) error {
	_, err := s.db.Exec(`INSERT INTO renders(symbol,time_range,kind,ts) VALUES(?,?,?,?)`,
		symbol, timeRange, kind, ts)
	return err
}

// UsageByKind counts renders per chart kind since the given unix time.
func (s *Store) UsageByKind(since int64) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM renders WHERE ts>=? GROUP BY kind`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err == nil && kind != "" {
			out[kind] = n
		}
	}
	return out, rows.Err()
}

// TopSymbols lists the most rendered symbols since the given unix time.
func (s *Store) TopSymbols(since int64, limit int) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT symbol FROM renders WHERE ts>=? GROUP BY symbol ORDER BY COUNT(*) DESC LIMIT ?`,
		since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err == nil && sym != "" {
			out = append(out, sym)
		}
	}
	return out, rows.Err()
}
