package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/inkpad-editor/inkpad/client/editor"
	"github.com/inkpad-editor/inkpad/commons"
	"github.com/inkpad-editor/inkpad/model"
)

var (
	// doc is the client's document; mutated only from the main UI loop.
	doc *model.Document

	// writer performs all mutations on doc.
	writer *model.Writer

	// e is the editor view over the document's content.
	e *editor.Editor

	logger = logrus.New()

	flags Flags

	// fileName is where Ctrl+S saves the document.
	fileName string
)

func main() {
	flags = parseFlags()
	fileName = flags.File

	s := bufio.NewScanner(os.Stdin)

	var name string
	if flags.Login {
		fmt.Print(color.YellowString("Enter your name: "))
		s.Scan()
		name = strings.TrimSpace(s.Text())
	}
	if name == "" {
		name = "guest"
	}

	logFile, debugLogFile, err := setupLogger(logger)
	if err != nil {
		fmt.Printf("Failed to setup the logger, exiting: %s\n", err)
		os.Exit(1)
	}
	defer closeLogFiles(logFile, debugLogFile)

	if flags.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	doc = model.NewDocument()
	writer = model.NewWriter(logger)

	if fileName != "" {
		if loaded, err := model.Load(fileName); err == nil {
			doc = loaded
		} else {
			logger.Warnf("failed to load %s: %v", fileName, err)
		}
	}

	conn, _, err := createConn(flags)
	if err != nil {
		color.Red("Connection error, exiting: %s", err)
		os.Exit(1)
	}
	defer conn.Close()

	color.Green("Welcome %s!\n", name)
	color.Green("Connected to server @ %s\n", flags.Server)

	msg := commons.Message{Username: name, Text: "has joined the session.", Type: commons.JoinMessage}
	_ = conn.WriteJSON(msg)

	if err := UI(conn); err != nil {
		if strings.HasPrefix(err.Error(), "inkpad") {
			fmt.Println("Exiting session.")
			os.Exit(0)
		}
		logger.Errorf("UI error, exiting: %v", err)
		os.Exit(1)
	}
}
