package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gameroom/gameroom-api/internal/domain"
)

var ErrActivityNotTracked = errors.New("activity is not tracked")

const (
	// DefaultSessionLength is the window applied by manual tile taps and
	// restarts. The transaction dialog carries its own configurable duration;
	// this one is fixed.
	DefaultSessionLength = 30 * time.Minute

	countdownInterval = time.Second
	sweepInterval     = time.Minute
)

type AvailabilityActivityRepository interface {
	FindAllActive(ctx context.Context) ([]domain.Activity, error)
	FindByID(ctx context.Context, id uint) (domain.Activity, error)
}

type AvailabilityTransactionRepository interface {
	FindEndingAfter(ctx context.Context, t time.Time) ([]domain.Transaction, error)
}

// tileState is the per-activity bookkeeping behind a dashboard tile. The
// paused fields are carried for parity with the stored shape but nothing
// flips them; there is no pause control.
type tileState struct {
	activity        domain.Activity
	available       bool
	endsAt          time.Time
	nextAvailable   string
	countdown       string
	paused          bool
	pausedRemaining time.Duration
}

// AvailabilityService maintains the derived availability state of every
// active activity. State is rebuilt from the transaction ledger on a
// one-minute sweep and advanced by per-activity one-second countdowns and
// manual actions in between.
//
// Manual stop/restart/toggle never write back to the ledger, so the sweep can
// revert a manually-stopped tile to in-use while its transaction is still
// open, and can flip a manually-extended tile back to available once the
// transaction's end time passes. Ledger and tile state are two sources of
// truth and the sweep wins.
type AvailabilityService struct {
	activityRepo    AvailabilityActivityRepository
	transactionRepo AvailabilityTransactionRepository

	mu     sync.Mutex
	tiles  map[uint]*tileState
	timers map[uint]context.CancelFunc // countdown registry, one cancellable timer per activity

	subsMu  sync.RWMutex
	subs    map[int]chan domain.StatusEvent
	nextSub int

	sweepCancel context.CancelFunc

	now func() time.Time
}

func NewAvailabilityService(activityRepo AvailabilityActivityRepository, transactionRepo AvailabilityTransactionRepository) *AvailabilityService {
	return &AvailabilityService{
		activityRepo:    activityRepo,
		transactionRepo: transactionRepo,
		tiles:           make(map[uint]*tileState),
		timers:          make(map[uint]context.CancelFunc),
		subs:            make(map[int]chan domain.StatusEvent),
		now:             time.Now,
	}
}

// DeriveStates computes the initial availability map from the ledger. Only
// active activities are considered. Matching is by the transaction's stored
// activity name containing the activity's name, not by foreign key, so a
// renamed activity silently stops matching its in-flight transactions; when
// two activities share a name the first open transaction wins.
func DeriveStates(activities []domain.Activity, transactions []domain.Transaction, now time.Time) map[uint]domain.TileStatus {
	states := make(map[uint]domain.TileStatus, len(activities))

	for _, activity := range activities {
		if !activity.IsActive {
			continue
		}

		status := domain.TileStatus{
			ActivityID: activity.ID,
			Available:  true,
		}

		for _, t := range transactions {
			if strings.Contains(t.ActivityName, activity.Name) && t.TimeEnd.After(now) {
				status.Available = false
				if !activity.IsBoardGame() {
					end := t.TimeEnd
					status.EndsAt = &end
					status.NextAvailable = formatClock(end)
				}
				break
			}
		}

		states[activity.ID] = status
	}

	return states
}

// Run performs the initial derivation and starts the one-minute ledger sweep.
func (s *AvailabilityService) Run(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("s.Refresh -> %w", err)
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.sweepCancel = cancel
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(sweepCtx); err != nil {
					zap.L().Error("availability sweep failed", zap.Error(err))
				}
			}
		}
	}()

	return nil
}

// Close cancels the sweep and every registered countdown.
func (s *AvailabilityService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sweepCancel != nil {
		s.sweepCancel()
		s.sweepCancel = nil
	}
	for id, cancel := range s.timers {
		cancel()
		delete(s.timers, id)
	}

	s.subsMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subsMu.Unlock()
}

// Refresh re-derives every tile from the ledger, replacing whatever manual
// state was set since the last pass. Last write wins; no reconciliation.
func (s *AvailabilityService) Refresh(ctx context.Context) error {
	now := s.now()

	activities, err := s.activityRepo.FindAllActive(ctx)
	if err != nil {
		return fmt.Errorf("s.activityRepo.FindAllActive -> %w", err)
	}

	transactions, err := s.transactionRepo.FindEndingAfter(ctx, now)
	if err != nil {
		return fmt.Errorf("s.transactionRepo.FindEndingAfter -> %w", err)
	}

	derived := DeriveStates(activities, transactions, now)

	s.mu.Lock()

	byID := make(map[uint]domain.Activity, len(activities))
	for _, a := range activities {
		byID[a.ID] = a
	}

	// Drop tiles for activities that went inactive or away, along with their
	// countdowns.
	for id := range s.tiles {
		if _, ok := derived[id]; !ok {
			s.stopCountdownLocked(id)
			delete(s.tiles, id)
		}
	}

	var events []domain.StatusEvent
	for id, status := range derived {
		tile := &tileState{
			activity:      byID[id],
			available:     status.Available,
			nextAvailable: status.NextAvailable,
		}
		if status.EndsAt != nil {
			tile.endsAt = *status.EndsAt
		}
		s.tiles[id] = tile

		if status.Available || status.EndsAt == nil {
			s.stopCountdownLocked(id)
		} else {
			tile.countdown = formatCountdown(status.EndsAt.Sub(now))
			s.startCountdownLocked(id, *status.EndsAt)
		}

		events = append(events, domain.StatusEvent{TileStatus: s.statusLocked(id)})
	}

	s.mu.Unlock()

	for _, e := range events {
		s.publish(e)
	}

	return nil
}

// ManualToggle flips a tile between available and in-use. Non-board-game
// tiles get the default 30-minute window and a running countdown; board games
// flip the flag and nothing else.
func (s *AvailabilityService) ManualToggle(id uint) (domain.StatusEvent, error) {
	s.mu.Lock()

	tile, ok := s.tiles[id]
	if !ok {
		s.mu.Unlock()
		return domain.StatusEvent{}, ErrActivityNotTracked
	}

	var event domain.StatusEvent

	switch {
	case tile.activity.IsBoardGame():
		tile.available = !tile.available
		message := "The board game has been marked as available."
		if !tile.available {
			message = "The board game has been marked as in use."
		}
		event = domain.StatusEvent{TileStatus: s.statusLocked(id), Message: message}

	case tile.available:
		s.markInUseLocked(id, s.now().Add(DefaultSessionLength))
		event = domain.StatusEvent{TileStatus: s.statusLocked(id), Message: "The activity has been marked as in use."}

	default:
		s.markAvailableLocked(id)
		event = domain.StatusEvent{TileStatus: s.statusLocked(id), Message: "The activity has been marked as available."}
	}

	s.mu.Unlock()
	s.publish(event)

	return event, nil
}

// Stop forces a tile back to available and clears its countdown. The
// transaction that put it in use is untouched, so the next sweep may flip the
// tile right back.
func (s *AvailabilityService) Stop(id uint) (domain.StatusEvent, error) {
	s.mu.Lock()

	if _, ok := s.tiles[id]; !ok {
		s.mu.Unlock()
		return domain.StatusEvent{}, ErrActivityNotTracked
	}

	s.markAvailableLocked(id)
	event := domain.StatusEvent{TileStatus: s.statusLocked(id), Message: "Timer stopped. The activity is now available."}

	s.mu.Unlock()
	s.publish(event)

	return event, nil
}

// Restart resets a tile to a fresh 30-minute window from any state. No
// ledger write occurs.
func (s *AvailabilityService) Restart(id uint) (domain.StatusEvent, error) {
	s.mu.Lock()

	if _, ok := s.tiles[id]; !ok {
		s.mu.Unlock()
		return domain.StatusEvent{}, ErrActivityNotTracked
	}

	s.markInUseLocked(id, s.now().Add(DefaultSessionLength))
	event := domain.StatusEvent{TileStatus: s.statusLocked(id), Message: "The timer has been reset to 30 minutes."}

	s.mu.Unlock()
	s.publish(event)

	return event, nil
}

// OnTransactionCreated puts the activity in use until the booking's end time,
// keeping the tile consistent with the just-created transaction without
// waiting for the next sweep.
func (s *AvailabilityService) OnTransactionCreated(ctx context.Context, activityID uint, endsAt time.Time) {
	s.mu.Lock()

	if _, ok := s.tiles[activityID]; !ok {
		activity, err := s.activityRepo.FindByID(ctx, activityID)
		if err != nil || !activity.IsActive {
			s.mu.Unlock()
			return
		}
		s.tiles[activityID] = &tileState{activity: activity, available: true}
	}

	if s.tiles[activityID].activity.IsBoardGame() {
		s.tiles[activityID].available = false
		event := domain.StatusEvent{TileStatus: s.statusLocked(activityID)}
		s.mu.Unlock()
		s.publish(event)
		return
	}

	s.markInUseLocked(activityID, endsAt)
	event := domain.StatusEvent{TileStatus: s.statusLocked(activityID)}

	s.mu.Unlock()
	s.publish(event)
}

// Status returns one tile's current state.
func (s *AvailabilityService) Status(id uint) (domain.TileStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tiles[id]; !ok {
		return domain.TileStatus{}, ErrActivityNotTracked
	}

	return s.statusLocked(id), nil
}

// Snapshot returns every tile's current state, ordered by activity id.
func (s *AvailabilityService) Snapshot() []domain.TileStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]domain.TileStatus, 0, len(s.tiles))
	for id := range s.tiles {
		statuses = append(statuses, s.statusLocked(id))
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].ActivityID < statuses[j].ActivityID
	})

	return statuses
}

// Subscribe registers a status event listener. The returned func removes it.
func (s *AvailabilityService) Subscribe() (<-chan domain.StatusEvent, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan domain.StatusEvent, 16)
	s.subs[id] = ch

	return ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()

		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

func (s *AvailabilityService) publish(event domain.StatusEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- event:
		default: // slow subscriber, drop
		}
	}
}

func (s *AvailabilityService) markInUseLocked(id uint, endsAt time.Time) {
	tile := s.tiles[id]
	tile.available = false
	tile.endsAt = endsAt
	tile.nextAvailable = formatClock(endsAt)
	tile.countdown = formatCountdown(endsAt.Sub(s.now()))
	tile.paused = false
	tile.pausedRemaining = 0

	s.startCountdownLocked(id, endsAt)
}

func (s *AvailabilityService) markAvailableLocked(id uint) {
	s.stopCountdownLocked(id)

	tile := s.tiles[id]
	tile.available = true
	tile.endsAt = time.Time{}
	tile.nextAvailable = ""
	tile.countdown = ""
	tile.paused = false
	tile.pausedRemaining = 0
}

// startCountdownLocked registers a one-second countdown for the activity,
// replacing any existing one. Paused tiles keep their frozen remainder.
func (s *AvailabilityService) startCountdownLocked(id uint, endsAt time.Time) {
	s.stopCountdownLocked(id)

	if tile := s.tiles[id]; tile != nil && tile.paused {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.timers[id] = cancel

	go func() {
		ticker := time.NewTicker(countdownInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if done := s.advance(id, endsAt); done {
					return
				}
			}
		}
	}()
}

func (s *AvailabilityService) stopCountdownLocked(id uint) {
	if cancel, ok := s.timers[id]; ok {
		cancel()
		delete(s.timers, id)
	}
}

// advance is one countdown tick: recompute the remaining window and either
// update the countdown text or, at zero, flip the tile back to available and
// clear all bookkeeping. Reports true when the countdown is finished.
func (s *AvailabilityService) advance(id uint, endsAt time.Time) bool {
	s.mu.Lock()

	tile, ok := s.tiles[id]
	if !ok || tile.available || !tile.endsAt.Equal(endsAt) {
		s.mu.Unlock()
		return true
	}

	remaining := endsAt.Sub(s.now())
	if remaining <= 0 {
		s.markAvailableLocked(id)
		event := domain.StatusEvent{TileStatus: s.statusLocked(id)}
		s.mu.Unlock()
		s.publish(event)
		return true
	}

	tile.countdown = formatCountdown(remaining)
	event := domain.StatusEvent{TileStatus: s.statusLocked(id)}

	s.mu.Unlock()
	s.publish(event)

	return false
}

func (s *AvailabilityService) statusLocked(id uint) domain.TileStatus {
	tile := s.tiles[id]

	status := domain.TileStatus{
		ActivityID:    id,
		Available:     tile.available,
		NextAvailable: tile.nextAvailable,
		Countdown:     tile.countdown,
		Paused:        tile.paused,
	}
	if !tile.endsAt.IsZero() {
		endsAt := tile.endsAt
		status.EndsAt = &endsAt
	}

	return status
}

// formatCountdown renders a remaining window as M:SS. A window at or below
// zero renders as 0:00, which is displayed for one tick before the tile
// transitions.
func formatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}

	minutes := int(remaining / time.Minute)
	seconds := int(remaining/time.Second) % 60

	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// formatClock renders an end time as a next-available wall-clock label, hour
// unpadded.
func formatClock(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}
