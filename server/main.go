package main

import (
	"flag"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/inkpad-editor/inkpad/commons"
	"github.com/inkpad-editor/inkpad/model"
)

// Upgrader instance to upgrade all HTTP connections to a WebSocket.
var upgrader = websocket.Upgrader{}

// clientInfo describes an active connection.
type clientInfo struct {
	ID       uuid.UUID
	Username string
}

var (
	// Currently active client connections, guarded by mu. The document
	// itself is only touched from the handleMsg goroutine.
	mu            sync.RWMutex
	activeClients = make(map[*websocket.Conn]*clientInfo)

	// Channel for client messages; routing everything through it
	// serializes all writer calls.
	messageChan = make(chan inbound)

	logger = logrus.New()
)

// inbound pairs a message with its source connection so handleMsg can reply
// to the sender alone.
type inbound struct {
	conn *websocket.Conn
	msg  commons.Message
}

func main() {
	// Parse flags.
	addr := flag.String("addr", ":9000", "Server's network address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleConn)

	// Handle incoming messages.
	go handleMsg()

	// Start the server.
	logger.Infof("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Fatalf("Error starting server, exiting: %v", err)
	}
}

// handleConn upgrades incoming HTTP connections, registers the client and
// pumps its messages into messageChan.
func handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("Error upgrading connection to websocket: %v", err)
		return
	}
	defer conn.Close()

	client := &clientInfo{ID: uuid.New()}
	mu.Lock()
	activeClients[conn] = client
	mu.Unlock()

	for {
		var msg commons.Message

		// Read message from the connection.
		if err := conn.ReadJSON(&msg); err != nil {
			logger.Infof("Closing connection with ID: %v", client.ID)
			mu.Lock()
			delete(activeClients, conn)
			mu.Unlock()
			messageChan <- inbound{conn: conn, msg: commons.Message{Type: commons.UsersMessage}}
			break
		}

		// Stamp the message with the client's UUID.
		msg.ID = client.ID

		messageChan <- inbound{conn: conn, msg: msg}
	}
}

// handleMsg listens to the messageChan channel, applies document operations
// and broadcasts messages to other clients. It is the only goroutine
// touching the document.
func handleMsg() {
	doc := model.NewDocument()
	writer := model.NewWriter(logger)

	for in := range messageChan {
		msg := in.msg

		// Log each message to stdout.
		t := time.Now().Format(time.ANSIC)
		switch msg.Type {
		case commons.OperationMessage:
			color.Green("%s >> %s: %s operation\n", t, msg.Username, msg.Operation.Type)
		default:
			color.Green("%s >> %s %s\n", t, msg.Username, msg.Text)
		}

		switch msg.Type {
		case commons.JoinMessage:
			mu.Lock()
			if client, ok := activeClients[in.conn]; ok {
				client.Username = msg.Username
			}
			mu.Unlock()

			// Bring the new client up to date before anyone else edits.
			sync := commons.Message{Type: commons.DocSyncMessage, Document: doc, ID: msg.ID}
			if err := in.conn.WriteJSON(&sync); err != nil {
				logger.Errorf("Error syncing document to %v: %v", msg.ID, err)
			}
			broadcast(in.conn, msg)
			announceUsers()
			continue

		case commons.DocReqMessage:
			sync := commons.Message{Type: commons.DocSyncMessage, Document: doc, ID: msg.ID}
			if err := in.conn.WriteJSON(&sync); err != nil {
				logger.Errorf("Error syncing document to %v: %v", msg.ID, err)
			}
			continue

		case commons.DocSyncMessage:
			// A client pushed a full document, e.g. after loading a file.
			if msg.Document != nil {
				doc = msg.Document
			}

		case commons.OperationMessage:
			if err := msg.Operation.Apply(doc, writer); err != nil {
				logger.Errorf("Error applying %s operation from %v: %v", msg.Operation.Type, msg.ID, err)
				continue
			}

		case commons.UsersMessage:
			announceUsers()
			continue
		}

		broadcast(in.conn, msg)
	}
}

// broadcast sends the message to every active client but the origin.
func broadcast(origin *websocket.Conn, msg commons.Message) {
	mu.RLock()
	conns := make([]*websocket.Conn, 0, len(activeClients))
	for conn := range activeClients {
		if conn != origin {
			conns = append(conns, conn)
		}
	}
	mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(&msg); err != nil {
			logger.Errorf("Error sending message to client: %v", err)
			conn.Close()
			mu.Lock()
			delete(activeClients, conn)
			mu.Unlock()
		}
	}
}

// announceUsers broadcasts the list of active users to everyone.
func announceUsers() {
	mu.RLock()
	names := make([]string, 0, len(activeClients))
	for _, client := range activeClients {
		if client.Username != "" {
			names = append(names, client.Username)
		}
	}
	mu.RUnlock()
	sort.Strings(names)

	broadcast(nil, commons.Message{
		Type: commons.UsersMessage,
		Text: strings.Join(names, ", "),
	})
}
