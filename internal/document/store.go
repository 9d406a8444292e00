package document

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// DefaultHistoryLimit is the number of undo steps a Store keeps.
const DefaultHistoryLimit = 100

type checkpoint struct {
	label string
	data  []byte
}

// Store holds the authoritative document and its undo/redo history.
// History entries are JSON snapshots of the whole document.
type Store struct {
	mu     sync.RWMutex
	doc    *Document
	undo   []checkpoint
	redo   []checkpoint
	limit  int
	logger *slog.Logger
}

// NewStore creates a store around doc with an empty history.
func NewStore(doc *Document, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{doc: doc, limit: DefaultHistoryLimit, logger: logger}
}

// SetHistoryLimit changes how many undo steps are kept. Values below one
// are ignored.
func (s *Store) SetHistoryLimit(n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = n
	s.trimLocked()
}

// Document returns the current document. Callers on the UI thread may
// mutate it directly after pushing a checkpoint.
func (s *Store) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Replace swaps in a new document and clears the history.
func (s *Store) Replace(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.undo = nil
	s.redo = nil
}

// PushHistory records the current document as an undo step and clears
// the redo stack.
func (s *Store) PushHistory(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.pushLocked(label)
}

func (s *Store) pushLocked(label string) error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		s.logger.Error("history snapshot failed", "label", label, "error", err)
		return fmt.Errorf("snapshot document: %w", err)
	}
	s.undo = append(s.undo, checkpoint{label: label, data: data})
	s.redo = nil
	s.trimLocked()
	return nil
}

func (s *Store) trimLocked() {
	if over := len(s.undo) - s.limit; over > 0 {
		s.undo = append(s.undo[:0:0], s.undo[over:]...)
	}
}

// Mutate pushes a checkpoint and runs fn against the document. If fn
// fails or panics the document is restored and the checkpoint dropped.
// fn must not call back into the Store.
func (s *Store) Mutate(label string, fn func(*Document) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pushLocked(label); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	depth := len(s.undo)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", label, r)
		}
		if err != nil && len(s.undo) == depth {
			s.restoreLocked(s.undo[depth-1])
			s.undo = s.undo[:depth-1]
		}
	}()

	return fn(s.doc)
}

// Undo restores the most recent checkpoint. It returns the checkpoint's
// label and false when there is nothing to undo.
func (s *Store) Undo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return "", false
	}

	current, err := json.Marshal(s.doc)
	if err != nil {
		s.logger.Error("undo snapshot failed", "error", err)
		return "", false
	}

	cp := s.undo[len(s.undo)-1]
	if !s.restoreLocked(cp) {
		return "", false
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, checkpoint{label: cp.label, data: current})
	return cp.label, true
}

// Redo reapplies the most recently undone step.
func (s *Store) Redo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return "", false
	}

	current, err := json.Marshal(s.doc)
	if err != nil {
		s.logger.Error("redo snapshot failed", "error", err)
		return "", false
	}

	cp := s.redo[len(s.redo)-1]
	if !s.restoreLocked(cp) {
		return "", false
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, checkpoint{label: cp.label, data: current})
	return cp.label, true
}

func (s *Store) restoreLocked(cp checkpoint) bool {
	doc, err := Parse(cp.data)
	if err != nil {
		s.logger.Error("history restore failed", "label", cp.label, "error", err)
		return false
	}
	s.doc = doc
	return true
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo) > 0
}
