// Package web exposes the engine's live state to debug tooling: a JSON
// status endpoint plus a websocket feed of state snapshots. The visual
// emulator consumes this feed; the engine itself never depends on a
// connected client.
package web

import (
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/touchpoint-hw/go-touchpoint/pkg/hub"
)

// EngineState is the snapshot broadcast to debug clients.
type EngineState struct {
	PointerX      int     `json:"pointer_x"`
	PointerY      int     `json:"pointer_y"`
	ObjectName    string  `json:"object_name"`
	ObjectRole    string  `json:"object_role"`
	ActiveRegions int     `json:"active_regions"`
	Elevation     float64 `json:"elevation"`
	DroppedCmds   uint64  `json:"dropped_cmds"`
}

// Server serves the status API and the state websocket.
type Server struct {
	app  *fiber.App
	port string
	log  *slog.Logger

	stateMu sync.RWMutex
	state   EngineState

	stateHub *hub.Hub
}

// NewServer builds the server on the given port.
func NewServer(port string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		port:     port,
		log:      logger,
		stateHub: hub.New("state", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Touchpoint Engine",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Get("/api/status", s.handleStatus)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// StartAsync runs the server in the background.
func (s *Server) StartAsync() {
	go s.stateHub.Run()
	go func() {
		s.log.Info("debug feed listening", "port", s.port)
		if err := s.app.Listen(":" + s.port); err != nil {
			s.log.Warn("debug feed stopped", "err", err)
		}
	}()
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// UpdateState replaces the snapshot and broadcasts it.
func (s *Server) UpdateState(state EngineState) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
	s.stateHub.BroadcastJSON(state)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	state := s.state
	s.stateMu.RUnlock()
	return c.JSON(state)
}

func (s *Server) handleStateWS(conn *websocket.Conn) {
	client := hub.NewClient(s.stateHub, conn)
	client.Run()
}
