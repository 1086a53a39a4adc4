package main

import (
	"github.com/gorilla/websocket"
	"github.com/nsf/termbox-go"

	"github.com/inkpad-editor/inkpad/client/editor"
)

// UI creates a new editor view and runs the main loop.
func UI(conn *websocket.Conn) error {
	err := termbox.Init()
	if err != nil {
		return err
	}
	defer termbox.Close()

	e = editor.NewEditor(editor.EditorConfig{ScrollEnabled: flags.Scroll})
	e.SetSize(termbox.Size())
	e.SetText(doc.Content())
	e.Draw()

	return mainLoop(conn)
}

// mainLoop is the main update loop for the UI.
func mainLoop(conn *websocket.Conn) error {
	termboxChan := getTermboxChan()
	msgChan := getMsgChan(conn)

	for {
		select {
		case termboxEvent := <-termboxChan:
			err := handleTermboxEvent(termboxEvent, conn)
			if err != nil {
				return err
			}
		case msg := <-msgChan:
			handleMsg(msg, conn)
		}
	}
}
