package store

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/storage"
)

func newTestStore(t *testing.T) (*ConversationStore, storage.KV) {
	t.Helper()
	kv, err := storage.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	return NewConversationStore(kv), kv
}

func TestStartNewConversation(t *testing.T) {
	s, _ := newTestStore(t)

	conv := s.StartNewConversation()
	if conv.ID == "" {
		t.Error("conversation ID is empty")
	}
	if len(conv.Messages) != 0 {
		t.Errorf("expected 0 messages, got %d", len(conv.Messages))
	}
	if conv.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
	if cur := s.Current(); cur == nil || cur.ID != conv.ID {
		t.Error("new conversation is not current")
	}

	// Each new conversation lands at the head of the list
	second := s.StartNewConversation()
	list := s.Conversations()
	if len(list) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Error("newest conversation is not at index 0")
	}
}

func TestAddMessage_Order(t *testing.T) {
	s, _ := newTestStore(t)
	s.StartNewConversation()

	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		s.AddMessage(models.MessageUser, text, "")
		if got := len(s.Current().Messages); got != i+1 {
			t.Fatalf("after %d appends, len = %d", i+1, got)
		}
	}

	conv := s.Current()
	for i, text := range texts {
		if conv.Messages[i].Text != text {
			t.Errorf("message %d = %q, want %q", i, conv.Messages[i].Text, text)
		}
	}

	// Timestamps and UpdatedAt are non-decreasing
	for i := 1; i < len(conv.Messages); i++ {
		if conv.Messages[i].Timestamp.Before(conv.Messages[i-1].Timestamp) {
			t.Error("message timestamps decreased")
		}
	}
	if conv.UpdatedAt.Before(conv.Messages[len(conv.Messages)-1].Timestamp) {
		t.Error("UpdatedAt is behind the last message")
	}
}

func TestAddMessage_AutoCreatesConversation(t *testing.T) {
	s, _ := newTestStore(t)

	if s.Current() != nil {
		t.Fatal("fresh store has a current conversation")
	}

	s.AddMessage(models.MessageUser, "hello", "")

	conv := s.Current()
	if conv == nil {
		t.Fatal("no conversation was created")
	}
	if len(conv.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(conv.Messages))
	}
	if list := s.Conversations(); len(list) != 1 || list[0].ID != conv.ID {
		t.Error("auto-created conversation is not head of list")
	}
}

func TestAddMessage_Preview(t *testing.T) {
	s, _ := newTestStore(t)
	s.StartNewConversation()

	s.AddMessage(models.MessageUser, "What is this?", "")
	if got := s.Current().Preview; got != "What is this?" {
		t.Errorf("Preview = %q, want %q", got, "What is this?")
	}

	// Assistant messages never touch the preview
	s.AddMessage(models.MessageAssistant, "It is a teapot.", "")
	if got := s.Current().Preview; got != "What is this?" {
		t.Errorf("Preview changed on assistant message: %q", got)
	}

	// Long user text is truncated with ellipsis
	long := strings.Repeat("z", 80)
	s.AddMessage(models.MessageUser, long, "")
	want := strings.Repeat("z", 47) + "..."
	if got := s.Current().Preview; got != want {
		t.Errorf("Preview = %q, want %q", got, want)
	}
}

func TestAddMessage_StampsIDAndKeepsImageRef(t *testing.T) {
	s, _ := newTestStore(t)

	msg := s.AddMessage(models.MessageUser, "look", "thumbref")
	if msg.ID == "" {
		t.Error("message ID is empty")
	}
	if msg.Timestamp.IsZero() {
		t.Error("message timestamp is zero")
	}
	if msg.Image != "thumbref" {
		t.Errorf("Image = %q", msg.Image)
	}
}

func TestSetProcessing(t *testing.T) {
	s, _ := newTestStore(t)

	if s.IsProcessing() {
		t.Error("fresh store is processing")
	}
	s.SetProcessing(true)
	if !s.IsProcessing() {
		t.Error("SetProcessing(true) not observed")
	}
	s.SetProcessing(false)
	if s.IsProcessing() {
		t.Error("SetProcessing(false) not observed")
	}
}

func TestDeleteConversation(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.StartNewConversation()
	second := s.StartNewConversation()

	// Deleting a non-current conversation leaves current untouched
	s.DeleteConversation(first.ID)
	if cur := s.Current(); cur == nil || cur.ID != second.ID {
		t.Error("current changed when deleting another conversation")
	}
	if len(s.Conversations()) != 1 {
		t.Error("conversation was not removed")
	}

	// Deleting the current conversation clears current without selecting
	// another one
	third := s.StartNewConversation()
	s.DeleteConversation(third.ID)
	if s.Current() != nil {
		t.Error("current not cleared after deleting current conversation")
	}
	if len(s.Conversations()) != 1 {
		t.Error("list length wrong after delete")
	}
}

func TestDeleteConversation_UnknownID(t *testing.T) {
	s, _ := newTestStore(t)
	conv := s.StartNewConversation()

	s.DeleteConversation("nonexistent-id")

	if len(s.Conversations()) != 1 {
		t.Error("unknown delete changed the list")
	}
	if cur := s.Current(); cur == nil || cur.ID != conv.ID {
		t.Error("unknown delete cleared current")
	}
}

func TestClearAllConversations(t *testing.T) {
	s, _ := newTestStore(t)
	s.StartNewConversation()
	s.StartNewConversation()

	s.ClearAllConversations()

	if len(s.Conversations()) != 0 {
		t.Error("list not empty after clear")
	}
	if s.Current() != nil {
		t.Error("current not cleared")
	}
}

func TestLoadConversation(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.StartNewConversation()
	s.StartNewConversation()

	if got := s.LoadConversation(first.ID); got == nil || got.ID != first.ID {
		t.Error("LoadConversation did not return the requested conversation")
	}
	if cur := s.Current(); cur == nil || cur.ID != first.ID {
		t.Error("current not switched")
	}
	if len(s.Conversations()) != 2 {
		t.Error("LoadConversation changed the list")
	}

	// An unknown ID silently sets current to nil
	if got := s.LoadConversation("nope"); got != nil {
		t.Error("unknown ID returned a conversation")
	}
	if s.Current() != nil {
		t.Error("current not nil after failed load")
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	s, kv := newTestStore(t)

	s.StartNewConversation()
	s.AddMessage(models.MessageUser, "persist me", "ref")
	s.AddMessage(models.MessageAssistant, "done", "")
	s.Flush()

	// A fresh store instance over the same storage sees the same list
	reloaded := NewConversationStore(kv)

	want, _ := json.Marshal(s.Conversations())
	got, _ := json.Marshal(reloaded.Conversations())
	if string(want) != string(got) {
		t.Errorf("reloaded list differs:\n got %s\nwant %s", got, want)
	}

	// The current pointer is transient and not persisted
	if reloaded.Current() != nil {
		t.Error("current pointer survived a reload")
	}
}

func TestPersistence_SurvivesWriteFailure(t *testing.T) {
	kv := &failingKV{}
	s := NewConversationStore(kv)

	// Mutations succeed in memory even though every write fails
	s.StartNewConversation()
	s.AddMessage(models.MessageUser, "still here", "")
	s.Flush()

	if len(s.Conversations()) != 1 {
		t.Error("in-memory state lost on persistence failure")
	}
	if len(s.Current().Messages) != 1 {
		t.Error("message lost on persistence failure")
	}
}

func TestCurrent_ReturnsSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	s.StartNewConversation()
	s.AddMessage(models.MessageUser, "original", "")

	// Mutating the returned conversation must not reach the store
	snap := s.Current()
	snap.Preview = "tampered"
	snap.Messages[0].Text = "tampered"
	snap.Messages = append(snap.Messages, models.Message{Text: "injected"})

	conv := s.Current()
	if conv.Preview != "original" {
		t.Errorf("Preview = %q, snapshot mutation leaked into the store", conv.Preview)
	}
	if len(conv.Messages) != 1 || conv.Messages[0].Text != "original" {
		t.Errorf("Messages = %+v, snapshot mutation leaked into the store", conv.Messages)
	}

	// Same for the list accessor
	list := s.Conversations()
	list[0].Messages[0].Text = "tampered"
	if got := s.Current().Messages[0].Text; got != "original" {
		t.Errorf("list snapshot mutation leaked into the store: %q", got)
	}
}

func TestConcurrentReadersDuringWrites(t *testing.T) {
	s, _ := newTestStore(t)
	s.StartNewConversation()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if conv := s.Current(); conv != nil {
				_ = conv.Preview
				for _, msg := range conv.Messages {
					_ = msg.Text
				}
			}
			for _, conv := range s.Conversations() {
				_ = len(conv.Messages)
			}
		}
	}()

	for i := 0; i < 50; i++ {
		s.AddMessage(models.MessageUser, "question", "")
		s.AddMessage(models.MessageAssistant, "answer", "")
	}
	close(stop)
	wg.Wait()
	s.Flush()

	if got := len(s.Current().Messages); got != 100 {
		t.Errorf("message count = %d, want 100", got)
	}
}
