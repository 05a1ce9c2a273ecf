// Package inmemdb provides map-backed repositories used by tests and local
// development in place of a real database.
package inmemdb

import (
	"sync"

	"github.com/mkabeya/grove/core/note"
	"github.com/mkabeya/grove/core/pomodoro"
	"github.com/mkabeya/grove/core/quiz"
	"github.com/mkabeya/grove/core/stats"
)

type (
	DB struct {
		note    *noteTable
		quiz    *quizTable
		session *sessionTable
		stats   *statsTable
	}

	noteTable struct {
		t       map[int]*note.Note
		pkCount int
		mutex   sync.RWMutex
	}

	quizTable struct {
		t       map[int]*quiz.Quiz
		pkCount int
		mutex   sync.RWMutex
	}

	sessionTable struct {
		t       map[int]*pomodoro.Session
		pkCount int
		mutex   sync.RWMutex
	}

	statsTable struct {
		t       map[string]*stats.Stats // keyed by userID (unique)
		pkCount int
		mutex   sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		note:    &noteTable{t: make(map[int]*note.Note)},
		quiz:    &quizTable{t: make(map[int]*quiz.Quiz)},
		session: &sessionTable{t: make(map[int]*pomodoro.Session)},
		stats:   &statsTable{t: make(map[string]*stats.Stats)},
	}
}

// Reset empties all tables and restarts PK sequences.
func (db *DB) Reset() {
	db.note.mutex.Lock()
	db.note.t = make(map[int]*note.Note)
	db.note.pkCount = 0
	db.note.mutex.Unlock()

	db.quiz.mutex.Lock()
	db.quiz.t = make(map[int]*quiz.Quiz)
	db.quiz.pkCount = 0
	db.quiz.mutex.Unlock()

	db.session.mutex.Lock()
	db.session.t = make(map[int]*pomodoro.Session)
	db.session.pkCount = 0
	db.session.mutex.Unlock()

	db.stats.mutex.Lock()
	db.stats.t = make(map[string]*stats.Stats)
	db.stats.pkCount = 0
	db.stats.mutex.Unlock()
}
