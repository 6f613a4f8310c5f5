// Package installers tracks individual installers and their revenue
// commitments. It predates the planner configuration and keeps its own
// per-level rate records keyed by display name.
package installers

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Installer status values. Removal is a soft delete to inactive.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ErrNotFound reports a missing installer id.
var ErrNotFound = errors.New("installer not found")

// Installer is one tracked crew member with committed working days.
type Installer struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	ExperienceLevel string    `json:"experience_level"`
	CommittedDays   []string  `json:"committed_days"`
	DateAdded       time.Time `json:"date_added"`
	Status          string    `json:"status"`
}

// InstallerUpdate carries whole-field replacements for an installer record.
// Nil fields are left untouched.
type InstallerUpdate struct {
	Name            *string   `json:"name,omitempty"`
	ExperienceLevel *string   `json:"experience_level,omitempty"`
	CommittedDays   *[]string `json:"committed_days,omitempty"`
	Status          *string   `json:"status,omitempty"`
}

// Store persists installers in sqlite.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add inserts a new active installer and returns the stored record.
func (s *Store) Add(name, experienceLevel string, committedDays []string) (Installer, error) {
	if committedDays == nil {
		committedDays = []string{}
	}
	daysJSON, err := json.Marshal(committedDays)
	if err != nil {
		return Installer{}, fmt.Errorf("marshal committed days: %w", err)
	}

	now := time.Now().UTC()
	result, err := s.db.Exec(`
		INSERT INTO installers (name, experience_level, committed_days, date_added, status)
		VALUES (?, ?, ?, ?, ?)
	`, name, experienceLevel, string(daysJSON), now.Format(time.RFC3339), StatusActive)
	if err != nil {
		return Installer{}, fmt.Errorf("insert installer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Installer{}, fmt.Errorf("installer insert id: %w", err)
	}

	return Installer{
		ID:              id,
		Name:            name,
		ExperienceLevel: experienceLevel,
		CommittedDays:   committedDays,
		DateAdded:       now,
		Status:          StatusActive,
	}, nil
}

// Get returns one installer by id regardless of status.
func (s *Store) Get(id int64) (Installer, error) {
	row := s.db.QueryRow(`
		SELECT id, name, experience_level, committed_days, date_added, status
		FROM installers
		WHERE id = ?
	`, id)
	inst, err := scanInstaller(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Installer{}, ErrNotFound
	}
	if err != nil {
		return Installer{}, fmt.Errorf("query installer: %w", err)
	}
	return inst, nil
}

// ListActive returns all active installers ordered by id.
func (s *Store) ListActive() ([]Installer, error) {
	return s.list(`
		SELECT id, name, experience_level, committed_days, date_added, status
		FROM installers
		WHERE status = ?
		ORDER BY id
	`, StatusActive)
}

// ListByExperience returns active installers of one experience level.
func (s *Store) ListByExperience(experienceLevel string) ([]Installer, error) {
	return s.list(`
		SELECT id, name, experience_level, committed_days, date_added, status
		FROM installers
		WHERE status = ? AND experience_level = ?
		ORDER BY id
	`, StatusActive, experienceLevel)
}

func (s *Store) list(query string, args ...any) ([]Installer, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query installers: %w", err)
	}
	defer rows.Close()

	installers := make([]Installer, 0)
	for rows.Next() {
		inst, err := scanInstaller(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installer: %w", err)
		}
		installers = append(installers, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate installers: %w", err)
	}
	return installers, nil
}

// Update applies the non-nil fields of the update and returns the stored
// record.
func (s *Store) Update(id int64, u InstallerUpdate) (Installer, error) {
	inst, err := s.Get(id)
	if err != nil {
		return Installer{}, err
	}

	if u.Name != nil {
		inst.Name = *u.Name
	}
	if u.ExperienceLevel != nil {
		inst.ExperienceLevel = *u.ExperienceLevel
	}
	if u.CommittedDays != nil {
		inst.CommittedDays = *u.CommittedDays
	}
	if u.Status != nil {
		if *u.Status != StatusActive && *u.Status != StatusInactive {
			return Installer{}, fmt.Errorf("invalid status %q", *u.Status)
		}
		inst.Status = *u.Status
	}

	daysJSON, err := json.Marshal(inst.CommittedDays)
	if err != nil {
		return Installer{}, fmt.Errorf("marshal committed days: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE installers
		SET name = ?, experience_level = ?, committed_days = ?, status = ?
		WHERE id = ?
	`, inst.Name, inst.ExperienceLevel, string(daysJSON), inst.Status, id)
	if err != nil {
		return Installer{}, fmt.Errorf("update installer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Installer{}, fmt.Errorf("update installer: %w", err)
	}
	if affected == 0 {
		return Installer{}, ErrNotFound
	}
	return inst, nil
}

// Remove marks an installer inactive.
func (s *Store) Remove(id int64) error {
	status := StatusInactive
	_, err := s.Update(id, InstallerUpdate{Status: &status})
	return err
}

// Delete permanently removes an installer record.
func (s *Store) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM installers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete installer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete installer: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInstaller(row scanner) (Installer, error) {
	var inst Installer
	var daysJSON, dateAdded string
	if err := row.Scan(&inst.ID, &inst.Name, &inst.ExperienceLevel, &daysJSON, &dateAdded, &inst.Status); err != nil {
		return Installer{}, err
	}
	if err := json.Unmarshal([]byte(daysJSON), &inst.CommittedDays); err != nil {
		return Installer{}, fmt.Errorf("decode committed days: %w", err)
	}
	if inst.CommittedDays == nil {
		inst.CommittedDays = []string{}
	}
	parsed, err := time.Parse(time.RFC3339, dateAdded)
	if err != nil {
		return Installer{}, fmt.Errorf("parse date added: %w", err)
	}
	inst.DateAdded = parsed
	return inst, nil
}
