package database

import (
	"database/sql"
	"fmt"

	"github.com/Rohan9731/HackTheVibe/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ─── Users ───

func (r *Repository) EnsureUser(id, name string) error {
	_, err := r.db.Exec(`INSERT OR IGNORE INTO users (id, name) VALUES (?, ?)`, id, name)
	return err
}

func (r *Repository) GetUserName(id string) (string, error) {
	var name string
	err := r.db.QueryRow(`SELECT name FROM users WHERE id = ?`, id).Scan(&name)
	return name, err
}

// ─── Transactions ───

const txColumns = `id, amount, merchant, category, timestamp, impulse_score, risk_level, was_cancelled`

func scanTransaction(scan func(...any) error) (models.Transaction, error) {
	var tx models.Transaction
	var cancelled int
	err := scan(&tx.ID, &tx.Amount, &tx.Merchant, &tx.Category, &tx.Timestamp,
		&tx.ImpulseScore, &tx.RiskLevel, &cancelled)
	tx.WasCancelled = cancelled != 0
	return tx, err
}

func (r *Repository) listTransactions(userID, where string, limit int) ([]models.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE user_id = ?` + where +
		` ORDER BY timestamp DESC LIMIT ?`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// ListTransactions returns the full attempt log, newest first.
func (r *Repository) ListTransactions(userID string, limit int) ([]models.Transaction, error) {
	return r.listTransactions(userID, "", limit)
}

// ListCommitted returns only purchases that actually went through.
func (r *Repository) ListCommitted(userID string, limit int) ([]models.Transaction, error) {
	return r.listTransactions(userID, " AND was_cancelled = 0", limit)
}

func (r *Repository) CountTransactions(userID string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// RecordOutcome appends the transaction record and applies its state
// effects in one SQL transaction: streak update always, goal credit when
// creditGoalID > 0. Either everything lands or nothing does.
func (r *Repository) RecordOutcome(userID string, tx models.Transaction, creditGoalID int64, creditAmount float64) (int64, error) {
	dbTx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer dbTx.Rollback()

	cancelled := 0
	if tx.WasCancelled {
		cancelled = 1
	}
	res, err := dbTx.Exec(`
		INSERT INTO transactions (user_id, amount, merchant, category, timestamp, impulse_score, risk_level, was_cancelled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, tx.Amount, tx.Merchant, tx.Category, tx.Timestamp,
		tx.ImpulseScore, tx.RiskLevel, cancelled)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if tx.WasCancelled {
		_, err = dbTx.Exec(`
			INSERT INTO user_state (user_id, control_streak) VALUES (?, 1)
			ON CONFLICT(user_id) DO UPDATE SET control_streak = control_streak + 1`, userID)
	} else {
		_, err = dbTx.Exec(`
			INSERT INTO user_state (user_id, control_streak) VALUES (?, 0)
			ON CONFLICT(user_id) DO UPDATE SET control_streak = 0`, userID)
	}
	if err != nil {
		return 0, fmt.Errorf("update streak: %w", err)
	}

	if creditGoalID > 0 && creditAmount > 0 {
		_, err = dbTx.Exec(`UPDATE savings_goals SET current_amount = current_amount + ? WHERE id = ?`,
			creditAmount, creditGoalID)
		if err != nil {
			return 0, fmt.Errorf("credit goal: %w", err)
		}
	}

	return id, dbTx.Commit()
}

func (r *Repository) GetControlStreak(userID string) (int, error) {
	var streak int
	err := r.db.QueryRow(`SELECT control_streak FROM user_state WHERE user_id = ?`, userID).Scan(&streak)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return streak, err
}

// ─── Moods ───

func (r *Repository) InsertMood(userID string, m models.MoodEntry) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO moods (user_id, mood, emoji, intensity, timestamp, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, m.Mood, m.Emoji, m.Intensity, m.Timestamp, m.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) ListMoods(userID string, limit int) ([]models.MoodEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, mood, emoji, intensity, timestamp, notes
		FROM moods WHERE user_id = ? ORDER BY timestamp DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moods []models.MoodEntry
	for rows.Next() {
		var m models.MoodEntry
		if err := rows.Scan(&m.ID, &m.Mood, &m.Emoji, &m.Intensity, &m.Timestamp, &m.Notes); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

func (r *Repository) RecentMood(userID string) (*models.MoodEntry, error) {
	moods, err := r.ListMoods(userID, 1)
	if err != nil || len(moods) == 0 {
		return nil, err
	}
	return &moods[0], nil
}

// ─── Savings goals ───

func (r *Repository) InsertGoal(userID string, g models.SavingsGoal) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO savings_goals (user_id, name, target_amount, current_amount, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) ListGoals(userID string) ([]models.SavingsGoal, error) {
	rows, err := r.db.Query(`
		SELECT id, name, target_amount, current_amount, deadline, created_at
		FROM savings_goals WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *Repository) GetGoal(goalID int64) (*models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := r.db.QueryRow(`
		SELECT id, name, target_amount, current_amount, deadline, created_at
		FROM savings_goals WHERE id = ?`, goalID).
		Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ─── Accountability contacts ───

func (r *Repository) InsertContact(userID string, c models.AccountabilityContact) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO accountability_contacts (user_id, name, phone, email) VALUES (?, ?, ?, ?)`,
		userID, c.Name, c.Phone, c.Email)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) ListContacts(userID string) ([]models.AccountabilityContact, error) {
	rows, err := r.db.Query(`
		SELECT id, name, phone, email
		FROM accountability_contacts WHERE user_id = ? AND is_active = 1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.AccountabilityContact
	for rows.Next() {
		var c models.AccountabilityContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// ─── User settings ───

func (r *Repository) GetSettings(userID string) (models.UserSettings, error) {
	s := models.DefaultSettings()
	var acc, breath, mood int
	err := r.db.QueryRow(`
		SELECT lock_duration, lock_sensitivity, enable_accountability, enable_breathing, enable_mood_alerts
		FROM user_settings WHERE user_id = ?`, userID).
		Scan(&s.LockDuration, &s.LockSensitivity, &acc, &breath, &mood)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return s, err
	}
	s.EnableAccountability = acc != 0
	s.EnableBreathing = breath != 0
	s.EnableMoodAlerts = mood != 0
	return s, nil
}

func (r *Repository) SaveSettings(userID string, s models.UserSettings) error {
	_, err := r.db.Exec(`
		INSERT INTO user_settings (user_id, lock_duration, lock_sensitivity, enable_accountability, enable_breathing, enable_mood_alerts)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			lock_duration = excluded.lock_duration,
			lock_sensitivity = excluded.lock_sensitivity,
			enable_accountability = excluded.enable_accountability,
			enable_breathing = excluded.enable_breathing,
			enable_mood_alerts = excluded.enable_mood_alerts`,
		userID, s.LockDuration, s.LockSensitivity,
		boolInt(s.EnableAccountability), boolInt(s.EnableBreathing), boolInt(s.EnableMoodAlerts))
	return err
}

// ─── Stats & maintenance ───

func (r *Repository) GetStats(userID string) (models.UserStats, error) {
	var stats models.UserStats
	err := r.db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE user_id = ?`, userID).
		Scan(&stats.TotalTransactions)
	if err != nil {
		return stats, err
	}
	err = r.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions WHERE user_id = ? AND was_cancelled = 1`, userID).
		Scan(&stats.CancelledCount, &stats.MoneySaved)
	if err != nil {
		return stats, err
	}
	err = r.db.QueryRow(`SELECT COUNT(*) FROM moods WHERE user_id = ?`, userID).
		Scan(&stats.MoodEntries)
	return stats, err
}

// ClearUserData wipes every table for one user in a single transaction.
func (r *Repository) ClearUserData(userID string) error {
	dbTx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	for _, table := range []string{"transactions", "moods", "savings_goals", "accountability_contacts", "user_settings", "user_state"} {
		if _, err := dbTx.Exec(`DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return dbTx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
