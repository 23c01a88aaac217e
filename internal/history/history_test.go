package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumachat/luma/internal/chat"
)

func sampleSnapshot() chat.Snapshot {
	return chat.Snapshot{
		{
			ID:           "conv-1",
			Title:        "What Is Go",
			SystemPrompt: chat.DefaultSystemPrompt,
			CreatedAt:    1714000000000,
			Messages: []chat.Message{
				{ID: "m1", Sender: chat.SenderUser, Text: "what is go"},
				{ID: "m2", Sender: chat.SenderAssistant, Text: `<ol class="ai-list"><li><strong>A language</strong></li></ol>`, IsStructured: true, Liked: true},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s := New(path)
	defer s.Close()

	require.NoError(t, s.Save(sampleSnapshot()))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleSnapshot(), got)
}

func TestLoad_EmptyStore(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "history.db"))
	defer s.Close()

	_, ok, err := s.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSave_OverwritesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s := New(path)
	defer s.Close()

	require.NoError(t, s.Save(sampleSnapshot()))

	second := sampleSnapshot()
	second[0].Title = "Renamed"
	require.NoError(t, s.Save(second))

	got, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, "Renamed", got[0].Title)
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s := New(path)
	require.NoError(t, s.Save(sampleSnapshot()))
	require.NoError(t, s.Close())

	reopened := New(path)
	defer reopened.Close()
	got, ok, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleSnapshot(), got)
}
