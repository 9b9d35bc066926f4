package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInsufficientCoins is returned when a purchase costs more than the balance.
var ErrInsufficientCoins = errors.New("storage: insufficient coins")

// Profile is a player's persisted progress.
type Profile struct {
	Player    string
	Coins     int
	Level     int
	Score     int
	Inventory map[string]int // Power-up id -> count
	UpdatedAt time.Time
}

// Progress is what the host persists from a running session.
type Progress struct {
	Score     int
	Coins     int
	Level     int
	Inventory map[string]int
}

// execer is the part of *sql.DB and *sql.Tx the helpers need.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func ensureProfile(q execer, player string) error {
	_, err := q.Exec("INSERT OR IGNORE INTO profiles (player) VALUES (?)", player)
	if err != nil {
		return fmt.Errorf("storage: cannot create profile: %w", err)
	}
	return nil
}

// LoadProfile returns the player's profile, creating a fresh one
// (0 coins, level 1) on first sight.
func (s *Store) LoadProfile(player string) (Profile, error) {
	if err := ensureProfile(s.db, player); err != nil {
		return Profile{}, err
	}

	p := Profile{Player: player}
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT coins, level, score, updated_at FROM profiles WHERE player = ?",
		player,
	).Scan(&p.Coins, &p.Level, &p.Score, &updatedAt)
	if err != nil {
		return Profile{}, fmt.Errorf("storage: cannot load profile: %w", err)
	}
	p.UpdatedAt = parseTime(updatedAt)

	p.Inventory, err = inventory(s.db, player)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SaveProgress persists score, coins, level and inventory in one transaction.
func (s *Store) SaveProgress(player string, p Progress) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO profiles (player, coins, level, score, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		   coins = excluded.coins,
		   level = excluded.level,
		   score = excluded.score,
		   updated_at = excluded.updated_at`,
		player, max(0, p.Coins), max(1, p.Level), max(0, p.Score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}

	for id, count := range p.Inventory {
		_, err = tx.Exec(
			`INSERT INTO inventory (player, item_id, count) VALUES (?, ?, ?)
			 ON CONFLICT(player, item_id) DO UPDATE SET count = excluded.count`,
			player, id, max(0, count),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save inventory: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// PurchasePowerUp debits price*count coins and credits count units of itemID.
// It returns the new coin balance, or ErrInsufficientCoins leaving everything unchanged.
func (s *Store) PurchasePowerUp(player, itemID string, price, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("storage: purchase count must be positive, got %d", count)
	}
	if price < 0 {
		return 0, fmt.Errorf("storage: price must not be negative, got %d", price)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ensureProfile(tx, player); err != nil {
		return 0, err
	}

	var coins int
	if err := tx.QueryRow("SELECT coins FROM profiles WHERE player = ?", player).Scan(&coins); err != nil {
		return 0, fmt.Errorf("storage: cannot read balance: %w", err)
	}

	// No balance can cover a cost past MaxInt.
	if price > 0 && count > math.MaxInt/price {
		return coins, fmt.Errorf("%w: have %d, %d x %d overflows", ErrInsufficientCoins, coins, count, price)
	}
	cost := price * count
	if coins < cost {
		return coins, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCoins, coins, cost)
	}
	balance := coins - cost

	_, err = tx.Exec(
		"UPDATE profiles SET coins = ?, updated_at = CURRENT_TIMESTAMP WHERE player = ?",
		balance, player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot debit coins: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO inventory (player, item_id, count) VALUES (?, ?, ?)
		 ON CONFLICT(player, item_id) DO UPDATE SET count = count + excluded.count`,
		player, itemID, count,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot credit inventory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit purchase: %w", err)
	}
	return balance, nil
}

// Inventory returns the player's power-up counts keyed by id.
func (s *Store) Inventory(player string) (map[string]int, error) {
	return inventory(s.db, player)
}

func inventory(q execer, player string) (map[string]int, error) {
	rows, err := q.Query("SELECT item_id, count FROM inventory WHERE player = ?", player)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inventory: %w", err)
	}
	defer rows.Close()

	inv := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		inv[id] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inv, nil
}
