package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodx/internal/formatter"
	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/services"
	"github.com/desertthunder/moodx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CurateView ViewState = iota
	PlaylistListView
	ItemListView
	ForYouView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	previous     ViewState
	engine       *tasks.PlaylistEngine
	provider     services.CatalogProvider
	userID       string
	width        int
	height       int
	playlistList list.Model
	itemList     list.Model
	itemTitle    lipgloss.Style // itemList title style before any playlist color
	forYouList   list.Model
	playlists    []models.MoodPlaylist
	progressChan <-chan tasks.ProgressUpdate
	done         <-chan curateComplete
	progress     tasks.ProgressUpdate
	result       *tasks.CurateResult
	topMoods     []models.MoodTag
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. userID selects whose history drives the "for you" view;
// when empty the view falls back to time-of-day suggestions.
func NewModel(ctx context.Context, engine *tasks.PlaylistEngine, provider services.CatalogProvider, userID string) *Model {
	itemList := newList("")
	return &Model{
		ctx:          ctx,
		view:         CurateView,
		engine:       engine,
		provider:     provider,
		userID:       userID,
		playlistList: newList("Mood Playlists"),
		itemList:     itemList,
		itemTitle:    itemList.Styles.Title,
		forYouList:   newList("For You"),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	return l
}

// Init starts curating the catalog.
func (m *Model) Init() tea.Cmd {
	return m.startCuration()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.playlistList, &m.itemList, &m.forYouList} {
			l.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, waitForProgress(m.progressChan, m.done)

	case MsgCurateComplete:
		data := msg.data.(curateComplete)
		m.progressChan, m.done = nil, nil
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.result = data.result
		m.playlists = data.result.Playlists
		m.playlistList.SetItems(playlistItems(m.playlists))
		m.playlistList.Title = fmt.Sprintf("Mood Playlists • %d titles from %s", data.result.Items, data.result.Source)
		m.view = PlaylistListView
		return m, nil

	case MsgPersonalized:
		data := msg.data.(personalized)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.topMoods = data.result.TopMoods
		m.forYouList.SetItems(playlistItems(data.result.Playlists))
		if len(m.topMoods) > 0 {
			m.forYouList.Title = fmt.Sprintf("For You • %s", formatter.MoodList(m.topMoods))
		} else {
			m.forYouList.Title = "For You • right now"
		}
		m.view = ForYouView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
			m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
	}

	switch m.view {
	case CurateView:
		return m.renderCurate()
	case PlaylistListView:
		return m.renderList(m.playlistList, m.renderNow(), m.keys.enter, m.keys.forYou, m.keys.refresh, m.keys.quit)
	case ItemListView:
		header := ""
		if len(m.itemList.Items()) == 0 {
			header = styles.warn.Render("Nothing in the catalog matches this mood yet.")
		}
		return m.renderList(m.itemList, header, m.keys.back, m.keys.quit)
	case ForYouView:
		header := styles.warn.Render("No viewing history yet, showing picks for right now.")
		if len(m.topMoods) > 0 {
			header = styles.ok.Render("Ranked by your viewing history")
		}
		return m.renderList(m.forYouList, header, m.keys.enter, m.keys.back, m.keys.quit)
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeList() != nil && m.activeList().FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case m.err != nil && key.Matches(msg, m.keys.refresh):
		m.err = nil
		return m, m.startCuration()
	case m.err != nil, m.view == CurateView:
		return m, nil
	}

	switch m.view {
	case PlaylistListView:
		switch {
		case key.Matches(msg, m.keys.enter):
			if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
				m.openPlaylist(pl.playlist, PlaylistListView)
			}
			return m, nil
		case key.Matches(msg, m.keys.forYou):
			return m, m.fetchPersonalized()
		case key.Matches(msg, m.keys.refresh):
			return m, m.startCuration()
		}

	case ForYouView:
		switch {
		case key.Matches(msg, m.keys.enter):
			if pl, ok := m.forYouList.SelectedItem().(playlistItem); ok {
				m.openPlaylist(m.generated(pl.playlist.Mood), ForYouView)
			}
			return m, nil
		case key.Matches(msg, m.keys.back):
			m.view = PlaylistListView
			return m, nil
		}

	case ItemListView:
		if key.Matches(msg, m.keys.back) {
			m.view = m.previous
			return m, nil
		}
	}

	return m.updateLists(msg)
}

func (m *Model) activeList() *list.Model {
	switch m.view {
	case PlaylistListView:
		return &m.playlistList
	case ItemListView:
		return &m.itemList
	case ForYouView:
		return &m.forYouList
	default:
		return nil
	}
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	l := m.activeList()
	if l == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

// openPlaylist shows the items of p, returning to from on esc.
func (m *Model) openPlaylist(p models.MoodPlaylist, from ViewState) {
	m.itemList.SetItems(contentItems(p.Content))
	m.itemList.Title = fmt.Sprintf("%s %s", p.Emoji, p.Name)
	m.itemList.Styles.Title = m.itemTitle
	if p.Color != "" {
		m.itemList.Styles.Title = m.itemTitle.Background(lipgloss.Color(p.Color))
	}
	m.previous = from
	m.view = ItemListView
}

// generated returns the curated playlist for mood, or an empty one if curation has not produced it.
func (m *Model) generated(mood models.MoodTag) models.MoodPlaylist {
	for _, p := range m.playlists {
		if p.Mood == mood {
			return p
		}
	}
	return models.MoodPlaylist{Name: formatter.MoodTitle(mood), Mood: mood}
}

func (m *Model) startCuration() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan curateComplete, 1)
	m.progressChan, m.done = progress, done
	m.progress = tasks.ProgressUpdate{}
	m.view = CurateView

	go func() {
		result, err := m.engine.Curate(m.ctx, progress, m.provider, tasks.CurateOpts{})
		done <- curateComplete{result: result, err: err}
		close(progress)
	}()

	return waitForProgress(progress, done)
}

func waitForProgress(progress <-chan tasks.ProgressUpdate, done <-chan curateComplete) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			c := <-done
			return curateCompleteMsg(c.result, c.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) fetchPersonalized() tea.Cmd {
	engine, userID := m.engine, m.userID
	ctx := m.ctx
	return func() tea.Msg {
		if userID == "" {
			return personalizedMsg(&tasks.PersonalizeResult{Playlists: engine.Curator().ForTimeOfDay("")}, nil)
		}
		return personalizedMsg(engine.Personalize(ctx, nil, userID, time.Time{}))
	}
}

func (m *Model) renderCurate() string {
	title := styles.title.Render("Curating Mood Playlists")

	var phase string
	switch m.progress.Phase {
	case tasks.LoadCatalog:
		phase = "Loading catalog..."
	case tasks.ClassifyItems:
		phase = fmt.Sprintf("Classifying titles (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.GeneratePlaylists:
		phase = "Building playlists..."
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, styles.help.Render(m.progress.Message))
}

// renderNow shows badges for the moods suggested at the current time.
func (m *Model) renderNow() string {
	var badges []string
	for _, p := range m.engine.Curator().ForTimeOfDay("") {
		badges = append(badges, styles.On(p.Emoji+" "+formatter.MoodTitle(p.Mood), lipgloss.Color(p.Color)))
	}
	if len(badges) == 0 {
		return ""
	}
	return styles.As("Right now: ", lipgloss.Color("#626262")) + strings.Join(badges, " ")
}

func (m *Model) renderList(l list.Model, header string, bindings ...key.Binding) string {
	helpView := m.help.ShortHelpView(bindings)
	if header != "" {
		return fmt.Sprintf("%s\n\n%s\n\n%s", header, l.View(), helpView)
	}
	return fmt.Sprintf("%s\n\n%s", l.View(), helpView)
}
