// Package lifecycle drives the analyze → commit|cancel state machine.
// Analysis is ephemeral; only these two decisions touch the context store,
// and each applies its mutations as one atomic unit.
package lifecycle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rohan9731/HackTheVibe/internal/database"
	"github.com/Rohan9731/HackTheVibe/internal/engine"
	"github.com/Rohan9731/HackTheVibe/internal/models"
)

// ErrDuplicate marks a commit/cancel replay inside the idempotency window.
// The first application already happened; the caller gets a conflict and
// no state changes.
var ErrDuplicate = errors.New("duplicate transaction attempt")

const historyLimit = 200

type Manager struct {
	repo   *database.Repository
	engine *engine.Engine

	mu    sync.Mutex
	users map[string]*sync.Mutex
	seen  map[string]time.Time
}

func New(repo *database.Repository, eng *engine.Engine) *Manager {
	return &Manager{
		repo:   repo,
		engine: eng,
		users:  make(map[string]*sync.Mutex),
		seen:   make(map[string]time.Time),
	}
}

// userLock returns the mutex serializing all writes for one user.
func (m *Manager) userLock(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.users[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.users[userID] = lock
	}
	return lock
}

// reserveIdempotency rejects a repeat of the same attempt within the
// window and reserves the key otherwise. The key is the client-supplied
// one when present, otherwise the (amount, merchant, timestamp) tuple.
// The reservation must be released if the write fails, so a real retry
// can get through.
func (m *Manager) reserveIdempotency(userID, clientKey string, c engine.Candidate, action string) (string, error) {
	key := clientKey
	if key == "" {
		key = fmt.Sprintf("%s|%s|%.2f|%s|%s", userID, action, c.Amount, c.Merchant, c.Timestamp.Format(time.RFC3339))
	} else {
		key = userID + "|" + key
	}

	window := time.Duration(m.engine.Tuning().IdempotencyWindowSeconds) * time.Second
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, t := range m.seen {
		if now.Sub(t) > window {
			delete(m.seen, k)
		}
	}
	if t, ok := m.seen[key]; ok && now.Sub(t) <= window {
		return "", fmt.Errorf("%w: seen %s ago", ErrDuplicate, now.Sub(t).Round(time.Millisecond))
	}
	m.seen[key] = now
	return key, nil
}

func (m *Manager) releaseIdempotency(key string) {
	m.mu.Lock()
	delete(m.seen, key)
	m.mu.Unlock()
}

// NewIdempotencyKey mints a key clients can attach to retry-safe requests.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// Snapshot loads the read view of a user's context for analysis.
func (m *Manager) Snapshot(userID, userName string) (*engine.Snapshot, error) {
	committed, err := m.repo.ListCommitted(userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load committed history: %w", err)
	}
	all, err := m.repo.ListTransactions(userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	moods, err := m.repo.ListMoods(userID, 20)
	if err != nil {
		return nil, fmt.Errorf("load moods: %w", err)
	}
	goals, err := m.repo.ListGoals(userID)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	contacts, err := m.repo.ListContacts(userID)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	settings, err := m.repo.GetSettings(userID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	streak, err := m.repo.GetControlStreak(userID)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}
	return &engine.Snapshot{
		Committed:     committed,
		All:           all,
		Moods:         moods,
		Goals:         goals,
		Contacts:      contacts,
		Settings:      settings,
		ControlStreak: streak,
		UserName:      userName,
	}, nil
}

// Analyze scores a candidate with no side effects.
func (m *Manager) Analyze(userID, userName string, c engine.Candidate) (*models.AnalysisResult, error) {
	snap, err := m.Snapshot(userID, userName)
	if err != nil {
		return nil, err
	}
	return m.engine.Analyze(c, snap)
}

// CommitResult reports a committed purchase.
type CommitResult struct {
	TransactionID int64
	ImpulseScore  float64
}

// Commit records the purchase as made and resets the control streak.
func (m *Manager) Commit(userID, userName, idempotencyKey string, c engine.Candidate) (*CommitResult, error) {
	if err := m.engine.ValidateCandidate(c); err != nil {
		return nil, err
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	key, err := m.reserveIdempotency(userID, idempotencyKey, c, "commit")
	if err != nil {
		return nil, err
	}

	snap, err := m.Snapshot(userID, userName)
	if err != nil {
		m.releaseIdempotency(key)
		return nil, err
	}
	score, risk, _ := m.engine.Score(c, snap)

	id, err := m.repo.RecordOutcome(userID, models.Transaction{
		Amount:       c.Amount,
		Merchant:     c.Merchant,
		Category:     c.Category,
		Timestamp:    c.Timestamp.Format(time.RFC3339),
		ImpulseScore: score,
		RiskLevel:    risk,
		WasCancelled: false,
	}, 0, 0)
	if err != nil {
		m.releaseIdempotency(key)
		return nil, fmt.Errorf("record commit: %w", err)
	}
	return &CommitResult{TransactionID: id, ImpulseScore: score}, nil
}

// CancelResult reports an avoided purchase.
type CancelResult struct {
	TransactionID int64
	ImpulseScore  float64
	MoneySaved    float64
	GoalCredited  string
}

// Cancel records the avoided purchase, bumps the control streak, and — when
// the analysis would have locked and a goal still needs funding — credits
// the goal. Record, streak and credit land atomically.
func (m *Manager) Cancel(userID, userName, idempotencyKey string, c engine.Candidate) (*CancelResult, error) {
	if err := m.engine.ValidateCandidate(c); err != nil {
		return nil, err
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	key, err := m.reserveIdempotency(userID, idempotencyKey, c, "cancel")
	if err != nil {
		return nil, err
	}

	snap, err := m.Snapshot(userID, userName)
	if err != nil {
		m.releaseIdempotency(key)
		return nil, err
	}
	score, risk, _ := m.engine.Score(c, snap)
	shouldLock := score >= m.engine.Tuning().ThresholdFor(snap.Settings.LockSensitivity)

	var creditGoalID int64
	var creditAmount float64
	var goalName string
	if goal := snap.ActiveGoal(); goal != nil && shouldLock {
		creditGoalID = goal.ID
		creditAmount = c.Amount * m.engine.Tuning().CreditFraction
		goalName = goal.Name
	}

	id, err := m.repo.RecordOutcome(userID, models.Transaction{
		Amount:       c.Amount,
		Merchant:     c.Merchant,
		Category:     c.Category,
		Timestamp:    c.Timestamp.Format(time.RFC3339),
		ImpulseScore: score,
		RiskLevel:    risk,
		WasCancelled: true,
	}, creditGoalID, creditAmount)
	if err != nil {
		m.releaseIdempotency(key)
		return nil, fmt.Errorf("record cancel: %w", err)
	}
	return &CancelResult{
		TransactionID: id,
		ImpulseScore:  score,
		MoneySaved:    c.Amount,
		GoalCredited:  goalName,
	}, nil
}
