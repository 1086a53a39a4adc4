// An experimental bubbletea front-end for inkpad. It reads and writes the
// same JSON documents as the termbox client, but has no networking yet.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkpad-editor/inkpad/model"
)

var fileName = flag.String("file", "inkpad-content.json", "The file to load the pad content from")

func main() {
	flag.Parse()
	UI(*fileName)
}

func UI(fileName string) {
	p := tea.NewProgram(initialModel(fileName))
	if err := p.Start(); err != nil {
		log.Fatal(err)
	}
}

type (
	errMsg error
)

type padModel struct {
	fileName  string
	doc       *model.Document
	writer    *model.Writer
	textInput textinput.Model
	textarea  textarea.Model
	status    string
	err       error
	Quitting  bool
	LoggedIn  bool
}

func initialModel(fileName string) padModel {
	ti := textinput.New()
	ti.Placeholder = "Username"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 20

	ta := textarea.New()
	ta.Placeholder = "Write some text here..."

	doc := model.NewDocument()
	if loaded, err := model.Load(fileName); err == nil {
		doc = loaded
		ta.SetValue(doc.Content())
	}

	return padModel{
		fileName:  fileName,
		doc:       doc,
		writer:    model.NewWriter(nil),
		textInput: ti,
		textarea:  ta,
		err:       nil,
	}
}

func (m padModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m padModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.LoggedIn {
				m.LoggedIn = true
			}
		case tea.KeyCtrlS:
			if err := m.save(); err != nil {
				m.status = fmt.Sprintf("Save failed: %v", err)
			} else {
				m.status = "Saved to " + m.fileName
			}
			return m, nil
		}

	// We handle errors just like any other message
	case errMsg:
		m.err = msg
		return m, nil
	}

	if !m.LoggedIn {
		m.textInput, cmd = m.textInput.Update(msg)
	} else {
		m.textarea, cmd = m.textarea.Update(msg)
		m.textarea.Focus()
	}

	return m, cmd
}

// save rebuilds the document from the textarea's content and writes it out.
// The markers from the previous document are carried over when their ranges
// still fit the new content.
func (m *padModel) save() error {
	old := m.doc
	m.doc = model.NewDocument()

	size := m.doc.Root().MaxOffset()
	if err := m.writer.Insert(model.NewPosition(m.doc.Root(), []int{size}), m.textarea.Value()); err != nil {
		return err
	}

	for _, name := range old.Markers().Names() {
		marker, _ := old.Markers().Get(name)
		if marker.Range.End.Offset() <= m.doc.Root().MaxOffset() {
			m.doc.Markers().Set(name, model.NewRange(
				model.NewPosition(m.doc.Root(), marker.Range.Start.Path()),
				model.NewPosition(m.doc.Root(), marker.Range.End.Path()),
			))
		}
	}

	return model.Save(m.fileName, m.doc)
}

func loginView(m padModel) string {
	return fmt.Sprintf(
		"Enter username:\n\n%s\n\n%s",
		m.textInput.View(),
		"(esc to quit)",
	) + "\n"
}

func editorView(m padModel) string {
	footer := "(ctrl+s to save, ctrl+c to quit)"
	if m.status != "" {
		footer = m.status + "\n" + footer
	}
	return fmt.Sprintf(
		"Username: %s\n\n%s\n\n%s",
		m.textInput.Value(),
		m.textarea.View(),
		footer,
	) + "\n\n"
}

func (m padModel) View() string {
	var s string
	if m.Quitting {
		return "\n  See you later!\n\n"
	}
	if !m.LoggedIn {
		s = loginView(m)
	} else {
		s = editorView(m)
	}
	return s
}
