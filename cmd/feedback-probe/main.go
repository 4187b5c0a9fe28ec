// Command feedback-probe tails the engine's debug state feed and prints
// one line per snapshot. Useful for watching elevation and transition
// behavior while moving the pointer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
)

type engineState struct {
	PointerX      int     `json:"pointer_x"`
	PointerY      int     `json:"pointer_y"`
	ObjectName    string  `json:"object_name"`
	ObjectRole    string  `json:"object_role"`
	ActiveRegions int     `json:"active_regions"`
	Elevation     float64 `json:"elevation"`
	DroppedCmds   uint64  `json:"dropped_cmds"`
}

func main() {
	addr := flag.String("addr", "localhost:8090", "Engine debug feed address")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/state", *addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: dial %s: %v\n", url, err)
		os.Exit(1)
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		conn.Close()
		os.Exit(0)
	}()

	fmt.Printf("Connected to %s\n", url)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read: %v\n", err)
			os.Exit(1)
		}
		var state engineState
		if err := json.Unmarshal(msg, &state); err != nil {
			continue
		}
		fmt.Printf("pointer=(%4d,%4d) object=%q role=%s regions=%d elevation=%+.3f dropped=%d\n",
			state.PointerX, state.PointerY, state.ObjectName, state.ObjectRole,
			state.ActiveRegions, state.Elevation, state.DroppedCmds)
	}
}
