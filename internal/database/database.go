package database

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const (
	resultsTable = "game_results"
	playersTable = "game_result_players"
)

// Service archives finished games. It never stores games in progress.
type Service struct {
	db     *sql.DB
	m      *sync.Mutex
	driver string
	logger *zap.Logger
}

// New opens the database with the given driver ("sqlite3" or "pgx") and
// creates the tables if needed.
func New(driver, dsn string, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite3" {
		// One connection keeps ":memory:" databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	}

	s := &Service{db: db, m: &sync.Mutex{}, driver: driver, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("results database ready", zap.String("driver", driver))
	return s, nil
}

func (s *Service) migrate() error {
	stmts := []string{
		`create table if not exists ` + resultsTable + ` (
			id text not null primary key,
			created_at text,
			winner_id text,
			winner_name text,
			rounds_played integer
		)`,
		`create table if not exists ` + playersTable + ` (
			game_id text not null,
			position integer not null,
			player_id text,
			name text,
			lives integer,
			eliminated boolean,
			primary key (game_id, position)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

// bind rewrites "?" placeholders for drivers that number them.
func (s *Service) bind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Insert stores a result and its players in one transaction.
func (s *Service) Insert(result GameResult) error {
	s.m.Lock()
	defer s.m.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(s.bind("INSERT INTO "+resultsTable+
		" (id, created_at, winner_id, winner_name, rounds_played) VALUES (?, ?, ?, ?, ?)"),
		result.ID,
		result.CreatedAt,
		result.WinnerID,
		result.WinnerName,
		result.RoundsPlayed)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", result.ID, err)
	}
	for i, p := range result.Players {
		_, err = tx.Exec(s.bind("INSERT INTO "+playersTable+
			" (game_id, position, player_id, name, lives, eliminated) VALUES (?, ?, ?, ?, ?, ?)"),
			result.ID, i, p.PlayerID, p.Name, p.Lives, p.Eliminated)
		if err != nil {
			return fmt.Errorf("insert player %s of %s: %w", p.PlayerID, result.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("game result stored", zap.String("game_id", result.ID), zap.String("winner_id", result.WinnerID))
	return nil
}

func (s *Service) GetAll() ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.queryResults("SELECT id, created_at, winner_id, winner_name, rounds_played FROM " +
		resultsTable + " ORDER BY created_at, id")
}

func (s *Service) GetByID(id string) (GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	results, err := s.queryResults("SELECT id, created_at, winner_id, winner_name, rounds_played FROM "+
		resultsTable+" WHERE id = ?", id)
	if err != nil {
		return GameResult{}, err
	}
	if len(results) == 0 {
		return GameResult{}, sql.ErrNoRows
	}
	return results[0], nil
}

// GetByPlayer returns every result the named player took part in.
func (s *Service) GetByPlayer(playerName string) ([]GameResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	results, err := s.queryResults("SELECT id, created_at, winner_id, winner_name, rounds_played FROM "+
		resultsTable+" WHERE id IN (SELECT game_id FROM "+playersTable+" WHERE name = ?) ORDER BY created_at, id",
		playerName)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, sql.ErrNoRows // No results found
	}
	return results, nil
}

// queryResults runs a result query and attaches players. Assumes s.m is held.
func (s *Service) queryResults(query string, args ...any) ([]GameResult, error) {
	rows, err := s.db.Query(s.bind(query), args...)
	if err != nil {
		return nil, err
	}
	results := []GameResult{}
	for rows.Next() {
		var r GameResult
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.WinnerID, &r.WinnerName, &r.RoundsPlayed); err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range results {
		players, err := s.queryPlayers(results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Players = players
	}
	return results, nil
}

func (s *Service) queryPlayers(gameID string) ([]ResultPlayer, error) {
	rows, err := s.db.Query(s.bind("SELECT player_id, name, lives, eliminated FROM "+playersTable+
		" WHERE game_id = ? ORDER BY position"), gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []ResultPlayer{}
	for rows.Next() {
		var p ResultPlayer
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Lives, &p.Eliminated); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
