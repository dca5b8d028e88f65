// Package ui is the terminal client for the notes API: a single
// bubbletea model holding the note list, one in-flight flag and error
// slot per card, and local draft state while a card is being edited.
// Mutations are applied to the local list only after the server
// confirms them.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whizpalsdeveloper/NotesApp/client"
	"github.com/whizpalsdeveloper/NotesApp/model"
)

const requestTimeout = 15 * time.Second

// mode identifies where keyboard input is routed.
type mode int

const (
	modeList mode = iota
	modeFilter
	modeCreate
	modeEdit
)

// noteCard pairs a server-confirmed note with its own in-flight flag
// and error slot, so one card's failure never blocks the others.
type noteCard struct {
	note   model.Note
	saving bool
	err    string
}

// noteForm is the draft state for the create and edit screens. While
// editing, the card keeps the server-confirmed values; the form keeps
// the draft. Cancel simply discards the form.
type noteForm struct {
	title   textinput.Model
	content textarea.Model
	editID  string // empty while creating
	saving  bool
	err     string
}

// Result messages from async API commands.

type notesLoadedMsg struct {
	notes []model.Note
	err   error
}

type noteCreatedMsg struct {
	note *model.Note
	err  error
}

type noteSavedMsg struct {
	id   string
	note *model.Note
	err  error
}

type noteDeletedMsg struct {
	id  string
	err error
}

type Model struct {
	api  *client.Client
	keys KeyMap

	mode    mode
	cards   []noteCard
	cursor  int
	loading bool
	err     string

	filter       textinput.Model
	activeFilter string

	form noteForm

	width  int
	height int
}

func New(api *client.Client) Model {
	filter := textinput.New()
	filter.Placeholder = "filter notes"
	filter.CharLimit = 200

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "content"
	content.CharLimit = 50000

	return Model{
		api:     api,
		keys:    DefaultKeyMap(),
		loading: true,
		filter:  filter,
		form:    noteForm{title: title, content: content},
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadNotesCmd()
}

// Commands. Each one performs a single API call and reports back with a
// typed result message.

func (m Model) loadNotesCmd() tea.Cmd {
	api := m.api
	filter := client.NoteFilter{Query: m.activeFilter}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		notes, err := api.ListNotes(ctx, filter)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m Model) createNoteCmd(title, content string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		note, err := api.CreateNote(ctx, title, content)
		return noteCreatedMsg{note: note, err: err}
	}
}

func (m Model) saveNoteCmd(id, title, content string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		note, err := api.UpdateNote(ctx, id, &title, &content)
		return noteSavedMsg{id: id, note: note, err: err}
	}
}

func (m Model) deleteNoteCmd(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := api.DeleteNote(ctx, id)
		return noteDeletedMsg{id: id, err: err}
	}
}

func (m *Model) cardIndex(id string) int {
	for i := range m.cards {
		if m.cards[i].note.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) resetForm() {
	m.form.title.SetValue("")
	m.form.content.SetValue("")
	m.form.editID = ""
	m.form.saving = false
	m.form.err = ""
	m.form.title.Blur()
	m.form.content.Blur()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// keep whatever list we already have
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		cards := make([]noteCard, len(msg.notes))
		for i, note := range msg.notes {
			cards[i] = noteCard{note: note}
		}
		m.cards = cards
		m.clampCursor()
		return m, nil

	case noteCreatedMsg:
		m.form.saving = false
		if msg.err != nil {
			m.form.err = msg.err.Error()
			return m, nil
		}
		// prepend only after the server confirmed the create
		m.cards = append([]noteCard{{note: *msg.note}}, m.cards...)
		m.cursor = 0
		m.mode = modeList
		m.resetForm()
		return m, nil

	case noteSavedMsg:
		if i := m.cardIndex(msg.id); i >= 0 {
			m.cards[i].saving = false
			if msg.err == nil {
				m.cards[i].note = *msg.note
				m.cards[i].err = ""
			}
		}
		if msg.err != nil {
			if m.mode == modeEdit && m.form.editID == msg.id {
				// draft stays editable, error shown
				m.form.saving = false
				m.form.err = msg.err.Error()
			}
			return m, nil
		}
		if m.mode == modeEdit && m.form.editID == msg.id {
			m.mode = modeList
			m.resetForm()
		}
		return m, nil

	case noteDeletedMsg:
		i := m.cardIndex(msg.id)
		if i < 0 {
			return m, nil
		}
		m.cards[i].saving = false
		if msg.err != nil {
			m.cards[i].err = msg.err.Error()
			return m, nil
		}
		m.cards = append(m.cards[:i], m.cards[i+1:]...)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeFilter:
			return m.updateFilter(msg)
		case modeCreate, modeEdit:
			return m.updateForm(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadNotesCmd()

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.filter.SetValue(m.activeFilter)
		m.filter.Focus()

	case key.Matches(msg, m.keys.New):
		m.mode = modeCreate
		m.resetForm()
		m.form.title.Focus()

	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(m.cards) {
			card := m.cards[m.cursor]
			m.mode = modeEdit
			m.form.editID = card.note.ID
			m.form.title.SetValue(card.note.Title)
			m.form.content.SetValue(card.note.Content)
			m.form.err = ""
			m.form.saving = false
			m.form.title.Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.cards) && !m.cards[m.cursor].saving {
			card := &m.cards[m.cursor]
			card.saving = true
			card.err = ""
			return m, m.deleteNoteCmd(card.note.ID)
		}
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.activeFilter = m.filter.Value()
		m.filter.Blur()
		m.mode = modeList
		m.loading = true
		return m, m.loadNotesCmd()

	case tea.KeyEsc:
		m.filter.SetValue(m.activeFilter)
		m.filter.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// discard the draft; the card keeps its server-confirmed values
		m.mode = modeList
		m.resetForm()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if m.form.saving {
			return m, nil
		}
		title := m.form.title.Value()
		content := m.form.content.Value()
		if m.mode == modeCreate {
			m.form.saving = true
			m.form.err = ""
			return m, m.createNoteCmd(title, content)
		}
		if i := m.cardIndex(m.form.editID); i >= 0 {
			m.cards[i].saving = true
			m.form.saving = true
			m.form.err = ""
			return m, m.saveNoteCmd(m.form.editID, title, content)
		}
		return m, nil

	case msg.Type == tea.KeyTab:
		if m.form.title.Focused() {
			m.form.title.Blur()
			m.form.content.Focus()
		} else {
			m.form.content.Blur()
			m.form.title.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.form.title.Focused() {
		m.form.title, cmd = m.form.title.Update(msg)
	} else {
		m.form.content, cmd = m.form.content.Update(msg)
	}
	return m, cmd
}
