package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/google/uuid"
)

var errStorageDown = errors.New("storage is down")

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type memLayouts struct {
	mu      sync.Mutex
	layouts map[uuid.UUID]string
	saveErr error
}

func newMemLayouts() *memLayouts {
	return &memLayouts{layouts: make(map[uuid.UUID]string)}
}

func (s *memLayouts) Save(_ context.Context, id uuid.UUID, encoded string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.layouts[id] = encoded
	return nil
}

func (s *memLayouts) Load(_ context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	encoded, ok := s.layouts[id]
	if !ok {
		return "", i.ErrNotFound
	}
	return encoded, nil
}

type memLocker struct {
	mu    sync.Mutex
	held  map[uuid.UUID]bool
	locks int
}

func newMemLocker() *memLocker {
	return &memLocker{held: make(map[uuid.UUID]bool)}
}

func (l *memLocker) Lock(_ context.Context, id uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[id] {
		return nil, i.ErrLocked
	}
	l.held[id] = true
	l.locks++
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, id)
	}, nil
}

func (l *memLocker) isHeld(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[id]
}

type memRuns struct {
	mu        sync.Mutex
	runs      map[uuid.UUID]*domain.Run
	lastLimit int64
}

func newMemRuns() *memRuns {
	return &memRuns{runs: make(map[uuid.UUID]*domain.Run)}
}

func (r *memRuns) Save(run *domain.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *memRuns) ByID(id uuid.UUID) (*domain.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, i.ErrNotFound
	}
	return run, nil
}

func (r *memRuns) ByMaze(mazeID uuid.UUID, limit int64) ([]*domain.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit

	var runs []*domain.Run
	for _, run := range r.runs {
		if run.MazeID == mazeID {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(a, b int) bool { return runs[a].CreatedAt.After(runs[b].CreatedAt) })
	if int64(len(runs)) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

type memLeaderboard struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]i.LeaderboardEntry
	lastN   int64
}

func newMemLeaderboard() *memLeaderboard {
	return &memLeaderboard{entries: make(map[uuid.UUID][]i.LeaderboardEntry)}
}

func (l *memLeaderboard) Record(_ context.Context, mazeID, runID uuid.UUID, moves int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[mazeID] = append(l.entries[mazeID], i.LeaderboardEntry{RunID: runID, Moves: moves})
	sort.SliceStable(l.entries[mazeID], func(a, b int) bool {
		return l.entries[mazeID][a].Moves < l.entries[mazeID][b].Moves
	})
	return nil
}

func (l *memLeaderboard) Best(_ context.Context, mazeID uuid.UUID, n int64) ([]i.LeaderboardEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastN = n
	entries := l.entries[mazeID]
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

type fakeTokenizer struct {
	subject string
	claims  map[string]interface{}
	exp     time.Duration
}

func (f *fakeTokenizer) Generate(subject string, claims map[string]interface{}, exp time.Duration) (string, error) {
	f.subject, f.claims, f.exp = subject, claims, exp
	return "token-for-" + subject, nil
}

func (f *fakeTokenizer) Decode(string) (map[string]interface{}, error) {
	return f.claims, nil
}
