package main

import (
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/nsf/termbox-go"
	"github.com/sirupsen/logrus"

	"github.com/inkpad-editor/inkpad/commons"
	"github.com/inkpad-editor/inkpad/model"
)

// The pad is edited as a flat run of text under the document root, so the
// editor's cursor index doubles as the model offset in operation paths.

// handleTermboxEvent handles key input by mutating the local document
// through the writer and sending an operation over the WebSocket connection.
func handleTermboxEvent(ev termbox.Event, conn *websocket.Conn) error {
	// We only want to deal with termbox key events (EventKey).
	if ev.Type == termbox.EventKey {
		switch ev.Key {

		// The default keys for exiting a session are Esc and Ctrl+C.
		case termbox.KeyEsc, termbox.KeyCtrlC:
			// Return an error with the prefix "inkpad", so that it gets
			// treated as an exit "event".
			return errors.New("inkpad: exiting")

		// The default key for saving the editor's contents is Ctrl+S.
		case termbox.KeyCtrlS:
			if fileName == "" {
				fileName = "inkpad-content.json"
			}

			if err := model.Save(fileName, doc); err != nil {
				e.StatusMsg = "Failed to save to " + fileName
				logger.Errorf("failed to save to %s: %v", fileName, err)
				e.SetStatusBar()
				return nil
			}

			e.StatusMsg = "Saved document to " + fileName
			e.SetStatusBar()

		// The default key for loading content from a file is Ctrl+L.
		case termbox.KeyCtrlL:
			if fileName == "" {
				e.StatusMsg = "No file to load!"
				e.SetStatusBar()
				break
			}

			logger.Log(logrus.InfoLevel, "LOADING DOCUMENT")
			newDoc, err := model.Load(fileName)
			e.StatusMsg = "Loading " + fileName
			e.SetStatusBar()
			if err != nil {
				e.StatusMsg = "Failed to load " + fileName
				logger.Errorf("failed to load file %s: %v", fileName, err)
				e.SetStatusBar()
				return nil
			}
			doc = newDoc
			e.SetX(0)
			e.ClearSelection()
			e.SetText(doc.Content())

			logger.Log(logrus.InfoLevel, "SENDING DOCUMENT")
			docMsg := commons.Message{Type: commons.DocSyncMessage, Document: doc}
			_ = conn.WriteJSON(&docMsg)

		// The default keys for moving left inside the text area are the
		// left arrow key, and Ctrl+B-like navigation is left to the
		// arrows; Ctrl+B toggles bold instead.
		case termbox.KeyArrowLeft:
			e.MoveCursor(-1, 0)

		case termbox.KeyArrowRight:
			e.MoveCursor(1, 0)

		case termbox.KeyArrowUp:
			e.MoveCursor(0, -1)

		case termbox.KeyArrowDown:
			e.MoveCursor(0, 1)

		// Home key, moves cursor to initial position (X=0).
		case termbox.KeyHome:
			e.SetX(0)

		// End key, moves cursor to final position (X = length of text).
		case termbox.KeyEnd:
			e.SetX(len(e.Text))

		// The default keys for deleting a character are Backspace and
		// Delete.
		case termbox.KeyBackspace, termbox.KeyBackspace2:
			performOperation(OperationDelete, ev, conn)
		case termbox.KeyDelete:
			performOperation(OperationDelete, ev, conn)

		// Ctrl+Space sets the selection anchor; a second press clears it.
		case termbox.KeyCtrlSpace:
			e.ToggleSelection()
			if e.SelectionAnchor >= 0 {
				e.StatusMsg = "Selection started"
			} else {
				e.StatusMsg = "Selection cleared"
			}
			e.SetStatusBar()

		// Ctrl+B toggles bold on the selection.
		case termbox.KeyCtrlB:
			toggleAttribute("bold", conn)

		// Ctrl+T toggles italic on the selection.
		case termbox.KeyCtrlT:
			toggleAttribute("italic", conn)

		// Ctrl+K drops a bookmark marker at the cursor.
		case termbox.KeyCtrlK:
			doc.Markers().Set("bookmark", model.CollapsedRange(
				model.NewPosition(doc.Root(), []int{e.Cursor}),
			))
			e.StatusMsg = fmt.Sprintf("Bookmark set at offset %d", e.Cursor)
			e.SetStatusBar()

		// The Tab key inserts 4 spaces to simulate a "tab".
		case termbox.KeyTab:
			for i := 0; i < 4; i++ {
				ev.Ch = ' '
				performOperation(OperationInsert, ev, conn)
			}

		// The Enter key inserts a newline character to the editor's
		// content.
		case termbox.KeyEnter:
			ev.Ch = '\n'
			performOperation(OperationInsert, ev, conn)

		// The Space key inserts a space character to the editor's content.
		case termbox.KeySpace:
			ev.Ch = ' '
			performOperation(OperationInsert, ev, conn)

		// Every other key is eligible to be a candidate for insertion.
		default:
			if ev.Ch != 0 {
				performOperation(OperationInsert, ev, conn)
			}
		}
	}

	e.Draw()
	return nil
}

const (
	OperationInsert = iota
	OperationDelete
)

// performOperation performs an insert or remove on the local document and
// sends the operation over the WebSocket connection.
func performOperation(opType int, ev termbox.Event, conn *websocket.Conn) {
	ch := string(ev.Ch)

	var msg commons.Message

	// Modify the local document first.
	switch opType {
	case OperationInsert:
		logger.Infof("LOCAL INSERT: %s at cursor position %v\n", ch, e.Cursor)

		offset := e.Cursor
		r := []rune(ch)
		e.AddRune(r[0])

		err := writer.Insert(model.NewPosition(doc.Root(), []int{offset}), ch)
		if err != nil {
			logger.Errorf("insert error: %v\n", err)
		}
		e.SetText(doc.Content())

		msg = commons.Message{Type: commons.OperationMessage, Operation: commons.Operation{
			Type:  commons.InsertOperation,
			Start: []int{offset},
			Value: ch,
		}}

	case OperationDelete:
		logger.Infof("LOCAL DELETE: cursor position %v\n", e.Cursor)

		if e.Cursor == 0 {
			return
		}
		from, to := e.Cursor-1, e.Cursor

		_, err := writer.Remove(model.NewRange(
			model.NewPosition(doc.Root(), []int{from}),
			model.NewPosition(doc.Root(), []int{to}),
		))
		if err != nil {
			logger.Errorf("remove error: %v\n", err)
		}
		e.SetText(doc.Content())
		e.MoveCursor(-1, 0)

		msg = commons.Message{Type: commons.OperationMessage, Operation: commons.Operation{
			Type:  commons.RemoveOperation,
			Start: []int{from},
			End:   []int{to},
		}}
	}

	// Send the message.
	if err := conn.WriteJSON(msg); err != nil {
		e.StatusMsg = "lost connection!"
		e.SetStatusBar()
	}
}

// toggleAttribute applies or removes an attribute over the selection and
// sends the matching operation.
func toggleAttribute(key string, conn *websocket.Conn) {
	start, end, ok := e.SelectionBounds()
	if !ok {
		e.StatusMsg = "Nothing selected"
		e.SetStatusBar()
		return
	}

	r := model.NewRange(
		model.NewPosition(doc.Root(), []int{start}),
		model.NewPosition(doc.Root(), []int{end}),
	)

	op := commons.Operation{Type: commons.SetAttributeOperation, Start: []int{start}, End: []int{end}, Key: key, Attribute: true}
	set := !attributeAt(r.Start, key)
	if set {
		if err := writer.SetAttribute(r, key, true); err != nil {
			logger.Errorf("setAttribute error: %v\n", err)
			return
		}
		e.StatusMsg = fmt.Sprintf("Applied %s to selection", key)
	} else {
		if err := writer.RemoveAttribute(r, key); err != nil {
			logger.Errorf("removeAttribute error: %v\n", err)
			return
		}
		op = commons.Operation{Type: commons.RemoveAttributeOperation, Start: []int{start}, End: []int{end}, Key: key}
		e.StatusMsg = fmt.Sprintf("Removed %s from selection", key)
	}
	e.SetStatusBar()

	msg := commons.Message{Type: commons.OperationMessage, Operation: op}
	if err := conn.WriteJSON(msg); err != nil {
		e.StatusMsg = "lost connection!"
		e.SetStatusBar()
	}
}

// attributeAt reports whether the node right at or around the position
// carries the attribute.
func attributeAt(p model.Position, key string) bool {
	if t := p.TextNode(); t != nil {
		_, ok := t.Attribute(key)
		return ok
	}
	if n := p.NodeAfter(); n != nil {
		_, ok := n.Attribute(key)
		return ok
	}
	return false
}

// handleMsg updates the local document with the contents of the message.
func handleMsg(msg commons.Message, conn *websocket.Conn) {
	switch msg.Type {
	case commons.DocSyncMessage:
		logger.Infof("DOCSYNC RECEIVED, updating local doc\n")

		if msg.Document != nil {
			doc = msg.Document
		}

	case commons.DocReqMessage:
		logger.Infof("DOCREQ RECEIVED, sending local document to %v\n", msg.ID)

		docMsg := commons.Message{Type: commons.DocSyncMessage, Document: doc, ID: msg.ID}
		_ = conn.WriteJSON(&docMsg)

	case commons.JoinMessage:
		e.StatusMsg = fmt.Sprintf("%s has joined the session!", msg.Username)
		e.SetStatusBar()

	case commons.UsersMessage:
		e.StatusMsg = fmt.Sprintf("Active users: %s", msg.Text)
		e.SetStatusBar()

	case commons.OperationMessage:
		if err := msg.Operation.Apply(doc, writer); err != nil {
			logger.Errorf("failed to apply remote %s operation: %v\n", msg.Operation.Type, err)
		}
		logger.Infof("REMOTE %s operation applied\n", msg.Operation.Type)
	}

	// printDoc is used for debugging purposes. This can be toggled via the
	// `-debug` flag. The default behavior is to NOT log anything, to keep
	// the debug logs from taking up space on the user's filesystem.
	printDoc(doc)

	e.SetText(doc.Content())
	if e.Cursor > len(e.Text) {
		e.Cursor = len(e.Text)
	}
	e.Draw()
}

// getTermboxChan returns a channel of termbox Events repeatedly waiting on
// user input.
func getTermboxChan() chan termbox.Event {
	termboxChan := make(chan termbox.Event)

	go func() {
		for {
			termboxChan <- termbox.PollEvent()
		}
	}()

	return termboxChan
}

// getMsgChan returns a message channel that repeatedly reads from a
// websocket connection.
func getMsgChan(conn *websocket.Conn) chan commons.Message {
	messageChan := make(chan commons.Message)
	go func() {
		for {
			var msg commons.Message

			// Read message.
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logger.Errorf("websocket error: %v", err)
				}
				break
			}

			logger.Infof("message received: %v\n", msg.Type)

			// Send message through channel.
			messageChan <- msg
		}
	}()
	return messageChan
}
