// Package chat owns the conversation collection: its data model, every state
// transition over it, and the persistence trigger that follows each mutation.
package chat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumachat/luma/internal/logger"
	"github.com/lumachat/luma/internal/text"
)

// Snapshot is the persisted form of the collection: an ordered array of
// conversation records. The active selection is not persisted; the first
// conversation becomes active after a load.
type Snapshot []Conversation

// Persister stores and retrieves collection snapshots. Save overwrites the
// whole snapshot; Load reports ok=false when nothing has been stored yet.
type Persister interface {
	Load() (snap Snapshot, ok bool, err error)
	Save(snap Snapshot) error
}

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

// Store is the owned, mutable conversation collection plus the active
// selection. All mutations go through its methods, and every successful
// mutation serializes the full collection through the persister.
type Store struct {
	mu            sync.Mutex
	conversations []Conversation
	activeID      string

	persister    Persister
	systemPrompt string

	// capabilities, injectable for tests
	now   func() time.Time
	newID func() string
}

// NewStore loads the persisted collection or seeds a default conversation
// when the snapshot is absent or unreadable. A load failure never propagates;
// the seed takes its place.
func NewStore(p Persister, systemPrompt string) *Store {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	s := &Store{
		persister:    p,
		systemPrompt: systemPrompt,
		now:          time.Now,
		newID:        uuid.NewString,
	}

	snap, ok, err := p.Load()
	if err != nil {
		logger.L.Warn("stored conversations unreadable; seeding fresh collection", "error", err)
	}
	if err == nil && ok && len(snap) > 0 {
		s.conversations = make([]Conversation, len(snap))
		for i, c := range snap {
			s.conversations[i] = c.clone()
		}
		s.activeID = s.conversations[0].ID
		return s
	}

	seed := s.newConversation(SeedTitle)
	s.conversations = []Conversation{seed}
	s.activeID = seed.ID
	s.persistLocked()
	return s
}

func (s *Store) newConversation(title string) Conversation {
	if title == "" {
		title = text.DefaultTitle
	}
	return Conversation{
		ID:           s.newID(),
		Title:        title,
		SystemPrompt: s.systemPrompt,
		Messages:     make([]Message, 0),
		CreatedAt:    s.now().UnixMilli(),
	}
}

// CreateConversation inserts a new conversation at the front of the
// collection and makes it active. An empty title gets the placeholder.
func (s *Store) CreateConversation(title string) Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.newConversation(title)
	s.conversations = append([]Conversation{c}, s.conversations...)
	s.activeID = c.ID
	s.persistLocked()
	return c.clone()
}

// NewChat creates a conversation titled after its position ("Chat N"), the
// new-chat action's default.
func (s *Store) NewChat() Conversation {
	s.mu.Lock()
	n := len(s.conversations) + 1
	s.mu.Unlock()
	return s.CreateConversation(fmt.Sprintf("Chat %d", n))
}

// DeleteConversation removes a conversation. When the collection would become
// empty a seed conversation is synthesized and promptSelect is true, telling
// the caller to ask the user to pick or create a conversation. When the
// active conversation is removed the selection moves to the first one.
func (s *Store) DeleteConversation(id string) (promptSelect bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false, ErrConversationNotFound
	}
	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)

	if len(s.conversations) == 0 {
		seed := s.newConversation(SeedTitle)
		s.conversations = []Conversation{seed}
		s.activeID = seed.ID
		s.persistLocked()
		return true, nil
	}
	if s.activeID == id {
		s.activeID = s.conversations[0].ID
	}
	s.persistLocked()
	return false, nil
}

// ClearMessages replaces the conversation's message sequence with an empty
// one; metadata is untouched.
func (s *Store) ClearMessages(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrConversationNotFound
	}
	s.conversations[idx].Messages = make([]Message, 0)
	s.persistLocked()
	return nil
}

// AppendMessage appends to the end of the conversation's message sequence,
// assigning an id when the message has none. A late append for a deleted
// conversation fails with ErrConversationNotFound; the caller decides whether
// to discard.
func (s *Store) AppendMessage(id string, msg Message) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Message{}, ErrConversationNotFound
	}
	if msg.ID == "" {
		msg.ID = s.newID()
	}
	s.conversations[idx].Messages = append(s.conversations[idx].Messages, msg)
	s.persistLocked()
	return msg, nil
}

// UpdateMessage replaces fields of one message in place.
func (s *Store) UpdateMessage(id, messageID string, patch MessagePatch) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Message{}, ErrConversationNotFound
	}
	mi := s.conversations[idx].MessageByID(messageID)
	if mi < 0 {
		return Message{}, ErrMessageNotFound
	}
	msg := &s.conversations[idx].Messages[mi]
	if patch.Text != nil {
		msg.Text = *patch.Text
	}
	if patch.Liked != nil {
		msg.Liked = *patch.Liked
	}
	s.persistLocked()
	return *msg, nil
}

// ToggleLike flips the liked flag of one message.
func (s *Store) ToggleLike(id, messageID string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Message{}, ErrConversationNotFound
	}
	mi := s.conversations[idx].MessageByID(messageID)
	if mi < 0 {
		return Message{}, ErrMessageNotFound
	}
	msg := &s.conversations[idx].Messages[mi]
	msg.Liked = !msg.Liked
	s.persistLocked()
	return *msg, nil
}

// RemoveMessage removes one message by id from the sequence.
func (s *Store) RemoveMessage(id, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrConversationNotFound
	}
	mi := s.conversations[idx].MessageByID(messageID)
	if mi < 0 {
		return ErrMessageNotFound
	}
	msgs := s.conversations[idx].Messages
	s.conversations[idx].Messages = append(msgs[:mi], msgs[mi+1:]...)
	s.persistLocked()
	return nil
}

// RenameConversation sets the display title.
func (s *Store) RenameConversation(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrConversationNotFound
	}
	s.conversations[idx].Title = title
	s.persistLocked()
	return nil
}

// SetActive moves the active selection.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return ErrConversationNotFound
	}
	s.activeID = id
	return nil
}

// ActiveID returns the id of the active conversation. The selection always
// resolves; if it ever points at a missing conversation it is repointed to
// the first one.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(s.activeID) < 0 && len(s.conversations) > 0 {
		s.activeID = s.conversations[0].ID
	}
	return s.activeID
}

// Get returns a copy of the conversation with the given id.
func (s *Store) Get(id string) (Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Conversation{}, false
	}
	return s.conversations[idx].clone(), true
}

// Conversations returns a copy of the collection in order.
func (s *Store) Conversations() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = c.clone()
	}
	return out
}

// Count returns the number of conversations.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

func (s *Store) indexLocked(id string) int {
	for i, c := range s.conversations {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full collection through the persister. A save
// failure keeps the in-memory state authoritative and is logged, not
// returned: the mutation itself has already succeeded.
func (s *Store) persistLocked() {
	snap := make(Snapshot, len(s.conversations))
	for i, c := range s.conversations {
		snap[i] = c.clone()
	}
	if err := s.persister.Save(snap); err != nil {
		logger.L.Error("failed to persist conversations", "error", err)
	}
}
