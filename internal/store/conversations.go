// Package store holds the in-memory state containers for conversations and
// settings, each backed by durable key-value storage.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/storage"
)

// ConversationStore owns the conversation list and the current conversation.
//
// Mutations are applied in memory first and persisted to the KV layer in the
// background: no operation blocks on the write, and a failed write degrades
// durability of the session, not its correctness. The current-conversation
// pointer is transient and never persisted.
//
// Accessors return snapshots, never live pointers: readers (a render loop on
// one goroutine, a send on another) hold copies that later mutations cannot
// touch.
type ConversationStore struct {
	mu            sync.RWMutex
	kv            storage.KV
	conversations []*models.Conversation
	current       *models.Conversation
	processing    bool

	persistMu  sync.Mutex
	persistSeq uint64
	writtenSeq uint64
	pending    sync.WaitGroup
}

// NewConversationStore creates a store and loads the persisted conversation
// list. A read failure is reported as a warning and the store starts empty;
// in-memory state is the source of truth for the running session.
func NewConversationStore(kv storage.KV) *ConversationStore {
	s := &ConversationStore{kv: kv}

	var conversations []*models.Conversation
	ok, err := storage.GetJSON(context.Background(), kv, storage.KeyConversations, &conversations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load conversations: %v\n", err)
	}
	if ok {
		s.conversations = conversations
	}
	return s
}

// StartNewConversation creates an empty conversation, makes it current, and
// prepends it to the conversation list. The returned conversation is a
// snapshot.
func (s *ConversationStore) StartNewConversation() *models.Conversation {
	s.mu.Lock()
	now := time.Now()
	conv := &models.Conversation{
		ID:        models.NewID(),
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.current = conv
	s.conversations = append([]*models.Conversation{conv}, s.conversations...)
	snapshot, seq := s.snapshotLocked()
	out := cloneConversation(conv)
	s.mu.Unlock()

	s.persistAsync(snapshot, seq)
	return out
}

// AddMessage stamps an ID and timestamp on the given partial message and
// appends it to the current conversation. When no conversation is current a
// new one is created first; that fallback is designed behavior, matching the
// app's ability to send from a cold screen, not a hidden side effect.
//
// The preview snippet is refreshed only for user messages.
func (s *ConversationStore) AddMessage(msgType models.MessageType, text, image string) *models.Message {
	s.mu.Lock()
	now := time.Now()
	if s.current == nil {
		conv := &models.Conversation{
			ID:        models.NewID(),
			Messages:  []models.Message{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.current = conv
		s.conversations = append([]*models.Conversation{conv}, s.conversations...)
	}

	msg := models.Message{
		ID:        models.NewID(),
		Type:      msgType,
		Text:      text,
		Image:     image,
		Timestamp: now,
	}
	s.current.Messages = append(s.current.Messages, msg)
	s.current.UpdatedAt = now
	if msgType == models.MessageUser {
		s.current.Preview = models.TruncateText(text, models.PreviewMaxLen)
	}
	snapshot, seq := s.snapshotLocked()
	s.mu.Unlock()

	s.persistAsync(snapshot, seq)
	return &msg
}

// SetProcessing sets the busy flag consulted by input surfaces.
func (s *ConversationStore) SetProcessing(processing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = processing
}

// IsProcessing reports the busy flag.
func (s *ConversationStore) IsProcessing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processing
}

// DeleteConversation removes the conversation with the given ID. Deleting the
// current conversation clears the current pointer; no other conversation is
// auto-selected. An unknown ID is a no-op.
func (s *ConversationStore) DeleteConversation(id string) {
	s.mu.Lock()
	found := false
	kept := s.conversations[:0]
	for _, c := range s.conversations {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.conversations = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	snapshot, seq := s.snapshotLocked()
	s.mu.Unlock()

	s.persistAsync(snapshot, seq)
}

// ClearAllConversations empties the list and clears the current pointer.
func (s *ConversationStore) ClearAllConversations() {
	s.mu.Lock()
	s.conversations = nil
	s.current = nil
	snapshot, seq := s.snapshotLocked()
	s.mu.Unlock()

	s.persistAsync(snapshot, seq)
}

// LoadConversation makes the conversation with the given ID current and
// returns a snapshot of it. An unknown ID sets current to nil and returns
// nil; callers must treat that as the lookup failing.
func (s *ConversationStore) LoadConversation(id string) *models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	for _, c := range s.conversations {
		if c.ID == id {
			s.current = c
			break
		}
	}
	return cloneConversation(s.current)
}

// Current returns a snapshot of the current conversation, or nil.
func (s *ConversationStore) Current() *models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConversation(s.current)
}

// Conversations returns a snapshot of the conversation list, most recent
// first.
func (s *ConversationStore) Conversations() []*models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = cloneConversation(c)
	}
	return out
}

// cloneConversation copies a conversation and its message slice. Messages
// hold only value fields, so this is a full deep copy.
func cloneConversation(c *models.Conversation) *models.Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.Messages = append([]models.Message(nil), c.Messages...)
	return &out
}

// Flush waits for background persistence to settle. Intended for shutdown.
func (s *ConversationStore) Flush() {
	s.pending.Wait()
}

// snapshotLocked marshals the conversation list and assigns it a sequence
// number. Must be called with s.mu held.
func (s *ConversationStore) snapshotLocked() ([]byte, uint64) {
	s.persistSeq++
	data, err := json.Marshal(s.conversations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal conversations: %v\n", err)
		return nil, s.persistSeq
	}
	return data, s.persistSeq
}

// persistAsync writes a snapshot in the background. Snapshots carry sequence
// numbers so a slow write can never clobber a newer one.
func (s *ConversationStore) persistAsync(snapshot []byte, seq uint64) {
	if snapshot == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if seq <= s.writtenSeq {
			return // a newer snapshot already landed
		}
		if err := s.kv.Set(context.Background(), storage.KeyConversations, snapshot); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to persist conversations: %v\n", err)
			return
		}
		s.writtenSeq = seq
	}()
}
