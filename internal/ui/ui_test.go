package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/mood"
	"github.com/desertthunder/moodx/internal/tasks"
	tu "github.com/desertthunder/moodx/internal/testing"
)

func newTestModel(t *testing.T, history tasks.HistorySource, userID string) *Model {
	t.Helper()
	curator := mood.NewCurator(mood.WithClock(func() time.Time {
		return time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	}))
	provider := &tu.MockCatalogProvider{Items: []models.ContentItem{
		tu.Item("m1", "Joy Ride", "", "comedy"),
		tu.Item("m2", "The Haunting", "", "horror"),
	}}
	m := NewModel(context.Background(), tasks.NewPlaylistEngine(curator, nil, history), provider, userID)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// runCuration drives Init's command chain until curation completes.
func runCuration(t *testing.T, m *Model) {
	t.Helper()
	cmd := m.Init()
	for i := 0; cmd != nil && i < 100; i++ {
		msg := cmd()
		_, cmd = m.Update(msg)
		if mm, ok := msg.(Msg); ok && mm.kind == MsgCurateComplete {
			return
		}
	}
	t.Fatal("curation did not complete")
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestOpenPlaylistTitleColor(t *testing.T) {
	m := newTestModel(t, nil, "")
	base := m.itemList.Styles.Title.GetBackground()

	m.openPlaylist(models.MoodPlaylist{Name: "Lights Off", Color: "#5B2A86"}, PlaylistListView)
	if got := m.itemList.Styles.Title.GetBackground(); got != lipgloss.Color("#5B2A86") {
		t.Errorf("expected playlist color background, got %v", got)
	}

	m.openPlaylist(models.MoodPlaylist{Name: "Uncolored"}, PlaylistListView)
	if got := m.itemList.Styles.Title.GetBackground(); got != base {
		t.Errorf("expected default title background %v after uncolored playlist, got %v", base, got)
	}
}

func TestModel(t *testing.T) {
	t.Run("curation fills playlist list", func(t *testing.T) {
		m := newTestModel(t, nil, "")
		if m.view != CurateView {
			t.Fatalf("expected CurateView before Init, got %d", m.view)
		}

		runCuration(t, m)

		if m.view != PlaylistListView {
			t.Fatalf("expected PlaylistListView, got %d", m.view)
		}
		if len(m.playlistList.Items()) != 8 {
			t.Errorf("expected 8 playlists, got %d", len(m.playlistList.Items()))
		}
		if !strings.Contains(m.View(), "Right now:") {
			t.Error("playlist view should show time-of-day suggestions")
		}
	})

	t.Run("enter opens playlist and esc returns", func(t *testing.T) {
		m := newTestModel(t, nil, "")
		runCuration(t, m)

		m.Update(keyPress("enter"))
		if m.view != ItemListView {
			t.Fatalf("expected ItemListView, got %d", m.view)
		}
		items := m.itemList.Items()
		if len(items) != 1 || items[0].(contentItem).item.ID != "m1" {
			t.Errorf("expected happy playlist with m1, got %d items", len(items))
		}

		m.Update(keyPress("esc"))
		if m.view != PlaylistListView {
			t.Errorf("expected PlaylistListView after esc, got %d", m.view)
		}
	})

	t.Run("for you without user uses time of day", func(t *testing.T) {
		m := newTestModel(t, nil, "")
		runCuration(t, m)

		_, cmd := m.Update(keyPress("f"))
		if cmd == nil {
			t.Fatal("expected command for personalized fetch")
		}
		m.Update(cmd())

		if m.view != ForYouView {
			t.Fatalf("expected ForYouView, got %d", m.view)
		}
		if len(m.forYouList.Items()) != 3 {
			t.Errorf("expected 3 morning suggestions, got %d", len(m.forYouList.Items()))
		}
	})

	t.Run("for you ranks history and opens curated content", func(t *testing.T) {
		history := &tu.MockHistorySource{ByUser: map[string][]models.ContentItem{
			"u1": {tu.Item("m2", "The Haunting", "", "horror")},
		}}
		m := newTestModel(t, history, "u1")
		runCuration(t, m)

		_, cmd := m.Update(keyPress("f"))
		m.Update(cmd())

		first := m.forYouList.Items()[0].(playlistItem).playlist
		if first.Mood != models.MoodScary {
			t.Errorf("expected scary first, got %s", first.Mood)
		}

		m.Update(keyPress("enter"))
		if m.view != ItemListView || len(m.itemList.Items()) != 1 {
			t.Fatalf("expected scary playlist items, view=%d items=%d", m.view, len(m.itemList.Items()))
		}

		m.Update(keyPress("esc"))
		if m.view != ForYouView {
			t.Errorf("expected to return to ForYouView, got %d", m.view)
		}
	})

	t.Run("curation error is shown and retryable", func(t *testing.T) {
		m := NewModel(context.Background(), tasks.NewPlaylistEngine(nil, nil, nil), &tu.MockCatalogProvider{Err: errors.New("catalog offline")}, "")
		runCuration(t, m)

		if !strings.Contains(m.View(), "catalog offline") {
			t.Errorf("expected error in view, got %q", m.View())
		}

		_, cmd := m.Update(keyPress("r"))
		if cmd == nil || m.err != nil || m.view != CurateView {
			t.Error("expected r to restart curation")
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m := newTestModel(t, nil, "")
		runCuration(t, m)

		_, cmd := m.Update(keyPress("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}
