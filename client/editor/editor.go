// Package editor renders the pad's text into a termbox cell grid and keeps
// track of the cursor, the scroll window and the selection anchor.
package editor

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
)

// EditorConfig configures the editor at startup.
type EditorConfig struct {
	ScrollEnabled bool
}

type Editor struct {
	// Text is the pad's content, a flat run of runes.
	Text []rune

	// Cursor is an index into Text.
	Cursor int

	Width  int
	Height int

	// ColOff and RowOff are the scroll window offsets.
	ColOff int
	RowOff int

	// SelectionAnchor is the fixed end of the selection, or -1 when
	// nothing is selected. The moving end is the cursor.
	SelectionAnchor int

	ShowMsg   bool
	StatusMsg string

	// Users holds the names of the connected peers, shown in the status
	// area.
	Users []string

	ScrollEnabled bool
}

func NewEditor(conf EditorConfig) *Editor {
	return &Editor{
		ScrollEnabled:   conf.ScrollEnabled,
		SelectionAnchor: -1,
	}
}

func (e *Editor) GetText() []rune {
	return e.Text
}

func (e *Editor) SetText(text string) {
	e.Text = []rune(text)
}

func (e *Editor) GetX() int {
	x, _ := e.calcXY(e.Cursor)
	return x
}

func (e *Editor) SetX(x int) {
	e.Cursor = x
}

func (e *Editor) GetY() int {
	_, y := e.calcXY(e.Cursor)
	return y
}

func (e *Editor) GetWidth() int {
	return e.Width
}

func (e *Editor) GetHeight() int {
	return e.Height
}

func (e *Editor) SetSize(w, h int) {
	e.Width = w
	e.Height = h
}

// ToggleSelection sets the selection anchor at the cursor, or clears it when
// one is already set.
func (e *Editor) ToggleSelection() {
	if e.SelectionAnchor >= 0 {
		e.SelectionAnchor = -1
		return
	}
	e.SelectionAnchor = e.Cursor
}

// ClearSelection drops the selection anchor.
func (e *Editor) ClearSelection() {
	e.SelectionAnchor = -1
}

// SelectionBounds returns the ordered ends of the selection and whether a
// non-empty selection exists.
func (e *Editor) SelectionBounds() (start, end int, ok bool) {
	if e.SelectionAnchor < 0 || e.SelectionAnchor == e.Cursor {
		return 0, 0, false
	}
	start, end = e.SelectionAnchor, e.Cursor
	if start > end {
		start, end = end, start
	}
	if end > len(e.Text) {
		end = len(e.Text)
	}
	return start, end, true
}

// AddRune adds a rune to the editor's state and updates the cursor.
func (e *Editor) AddRune(r rune) {
	if e.Cursor == 0 {
		e.Text = append([]rune{r}, e.Text...)
	} else if e.Cursor < len(e.Text) {
		e.Text = append(e.Text[:e.Cursor], e.Text[e.Cursor-1:]...)
		e.Text[e.Cursor] = r
	} else {
		e.Text = append(e.Text[:e.Cursor], r)
	}
	e.Cursor++
}

// Draw updates the UI by setting cells with the editor's content.
func (e *Editor) Draw() {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	cx, cy := e.calcXY(e.Cursor)

	// Draw the cursor relative to the scroll window.
	termbox.SetCursor(cx-1-e.ColOff, cy-1-e.RowOff)

	selStart, selEnd, hasSelection := e.SelectionBounds()

	x, y := 0, 0
	for i := 0; i < len(e.Text); i++ {
		if e.Text[i] == rune('\n') {
			x = 0
			y++
			continue
		}

		fg, bg := termbox.ColorDefault, termbox.ColorDefault
		if hasSelection && i >= selStart && i < selEnd {
			fg = termbox.AttrReverse
		}

		col, row := x-e.ColOff, y-e.RowOff
		if col >= 0 && col < e.Width && row >= 0 && row < e.Height-1 {
			termbox.SetCell(col, row, e.Text[i], fg, bg)
		}

		// Update x by the rune's width.
		x = x + runewidth.RuneWidth(e.Text[i])
	}

	if e.ShowMsg {
		e.SetStatusBar()
	} else {
		e.showPositions()
	}

	// Flush back buffer!
	termbox.Flush()
}

// SetStatusBar writes the status message into the bottom row for a few
// seconds.
func (e *Editor) SetStatusBar() {
	e.ShowMsg = true

	for i, r := range []rune(e.StatusMsg) {
		termbox.SetCell(i, e.Height-1, r, termbox.ColorDefault, termbox.ColorDefault)
	}

	_ = time.AfterFunc(5*time.Second, func() {
		e.ShowMsg = false
	})
}

// showPositions shows the cursor position with other details.
func (e *Editor) showPositions() {
	x, y := e.calcXY(e.Cursor)

	str := fmt.Sprintf("x=%d, y=%d, cursor=%d, len(text)=%d", x, y, e.Cursor, len(e.Text))
	if len(e.Users) > 0 {
		str += fmt.Sprintf("  |  connected: %d", len(e.Users))
	}

	for i, r := range []rune(str) {
		termbox.SetCell(i, e.Height-1, r, termbox.ColorDefault, termbox.ColorDefault)
	}
}

// MoveCursor updates the cursor position and, with scrolling enabled, moves
// the scroll window along with it.
func (e *Editor) MoveCursor(x, y int) {
	if len(e.Text) == 0 && e.Cursor == 0 {
		return
	}
	// Move cursor horizontally.
	newCursor := e.Cursor + x

	// Move cursor vertically.
	if y > 0 {
		newCursor = e.calcCursorDown()
	}
	if y < 0 {
		newCursor = e.calcCursorUp()
	}

	if e.ScrollEnabled {
		cx, cy := e.calcXY(newCursor)

		// Move the scroll window to keep the cursor visible.
		rowStart := e.RowOff + 1
		rowEnd := e.RowOff + e.Height - 1
		if cy <= rowStart {
			e.RowOff -= rowStart - cy
		}
		if cy > rowEnd {
			e.RowOff += cy - rowEnd
		}

		colStart := e.ColOff + 1
		colEnd := e.ColOff + e.Width
		if cx <= colStart {
			e.ColOff -= colStart - cx
		}
		if cx > colEnd {
			e.ColOff += cx - colEnd
		}
	}

	// Reset to bounds.
	if newCursor > len(e.Text) {
		newCursor = len(e.Text)
	}
	if newCursor < 0 {
		newCursor = 0
	}

	e.Cursor = newCursor
}

// For the functions calcCursorUp and calcCursorDown, newline characters are
// found by iterating backward and forward from the current cursor position.
// These characters are taken as the "start" and "end" of the current line.
// The offset from the start of the current line to the cursor is used to
// place the cursor on the target line, capped at that line's length.

// calcCursorUp calculates the intended cursor position after moving up one
// line.
func (e *Editor) calcCursorUp() int {
	pos := e.Cursor
	offset := 0

	// If the initial cursor is out of bounds or on a newline, move it.
	if pos == len(e.Text) || e.Text[pos] == '\n' {
		offset++
		pos--
	}

	if pos < 0 {
		pos = 0
	}

	start, end := pos, pos

	// Find the start of the current line.
	for start > 0 && e.Text[start] != '\n' {
		start--
	}

	// The cursor is on the first line already.
	if start == 0 {
		return 0
	}

	// Find the end of the current line.
	for end < len(e.Text) && e.Text[end] != '\n' {
		end++
	}

	// Find the start of the previous line.
	prevStart := start - 1
	for prevStart >= 0 && e.Text[prevStart] != '\n' {
		prevStart--
	}

	// Calculate the distance from the start of the current line to the
	// cursor.
	offset += pos - start
	if offset <= start-prevStart {
		return prevStart + offset
	}
	return start
}

// calcCursorDown calculates the intended cursor position after moving down
// one line.
func (e *Editor) calcCursorDown() int {
	pos := e.Cursor
	offset := 0

	// If the initial cursor is out of bounds or on a newline, move it.
	if pos == len(e.Text) || e.Text[pos] == '\n' {
		offset++
		pos--
	}

	if pos < 0 {
		pos = 0
	}

	start, end := pos, pos

	// Find the start of the current line.
	for start > 0 && e.Text[start] != '\n' {
		start--
	}

	// The start of the first line is not a newline character, unlike the
	// other lines in the text.
	if start == 0 && e.Text[start] != '\n' {
		offset++
	}

	// Find the end of the current line.
	for end < len(e.Text) && e.Text[end] != '\n' {
		end++
	}

	// When the cursor sits on a newline, end has to move past it,
	// otherwise start == end.
	if e.Text[pos] == '\n' && e.Cursor != 0 {
		end++
	}

	// The cursor is on the last line already.
	if end == len(e.Text) {
		return len(e.Text)
	}

	// Find the end of the next line.
	nextEnd := end + 1
	for nextEnd < len(e.Text) && e.Text[nextEnd] != '\n' {
		nextEnd++
	}

	// Calculate the distance from the start of the current line to the
	// cursor.
	offset += pos - start
	if offset < nextEnd-end {
		return end + offset
	}
	return nextEnd
}

// calcXY returns the one-based column and row for an index into the text.
func (e *Editor) calcXY(index int) (int, int) {
	x := 1
	y := 1

	if index < 0 {
		return x, y
	}

	if index > len(e.Text) {
		index = len(e.Text)
	}

	for i := 0; i < index; i++ {
		if e.Text[i] == rune('\n') {
			x = 1
			y++
		} else {
			x = x + runewidth.RuneWidth(e.Text[i])
		}
	}
	return x, y
}
