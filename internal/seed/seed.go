package seed

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// Stock revenue goals seeded on first boot, in currency units.
const (
	defaultWorstCaseGoal = 1200000
	defaultBaseCaseGoal  = 1500000
	defaultBestCaseGoal  = 1800000
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: the admin user and the
// revenue goal singleton are created only when missing.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureRevenueGoals(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hashPassword(password)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureRevenueGoals(tx *sql.Tx, stats *Stats) error {
	result, err := tx.Exec(`
		INSERT INTO revenue_goals (id, worst_case, base_case, best_case)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, defaultWorstCaseGoal, defaultBaseCaseGoal, defaultBestCaseGoal)
	if err != nil {
		return fmt.Errorf("insert default revenue goals: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert default revenue goals: %w", err)
	}
	stats.Inserts += int(affected)
	return nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
