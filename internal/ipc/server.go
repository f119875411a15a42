package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/winplace/internal/config"
	"github.com/1broseidon/winplace/internal/mover"
	"github.com/1broseidon/winplace/internal/placement"
	"github.com/1broseidon/winplace/internal/platform"
	"github.com/1broseidon/winplace/internal/runtimepath"
)

// Mover is the part of *mover.Mover the server drives.
type Mover interface {
	Move(p placement.Placement) (mover.Result, error)
	Undo() (platform.Rect, error)
	Stats() (moves int, last string)
}

var _ Mover = (*mover.Mover)(nil)

// ErrAlreadyRunning is returned by NewServer when another daemon is
// listening on the socket.
var ErrAlreadyRunning = errors.New("another winplace daemon is already listening")

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	mover        Mover
	backend      platform.Backend
	startTime    time.Time
	reloadChan   chan struct{}
	loadConfig   func() (*config.Config, error)
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. A successful RELOAD stores the new
// config and signals reloadChan without blocking.
func NewServer(cfg *config.Config, mv Mover, backend platform.Backend, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// A socket that still accepts connections belongs to a running daemon;
	// anything else at the path is left over from a crash.
	if conn, err := net.DialTimeout("unix", socketPath, 500*time.Millisecond); err == nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, socketPath)
	}
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		mover:      mv,
		backend:    backend,
		startTime:  time.Now(),
		reloadChan: reloadChan,
		loadConfig: config.Load,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one newline-terminated JSON request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandMove:
		return s.handleMove(req.Payload)
	case CommandUndo:
		return s.handleUndo()
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleMove(payload json.RawMessage) *Response {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if req.Placement == "" {
		return NewErrorResponse("placement is required")
	}

	p, err := placement.Parse(req.Placement)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	res, err := s.mover.Move(p)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to move window: %v", err))
	}

	resp, err := NewOKResponse(MoveData{
		Window:    uint32(res.Window),
		Placement: res.Placement.String(),
		Display:   res.Display,
		X:         res.After.X,
		Y:         res.After.Y,
		Width:     res.After.Width,
		Height:    res.After.Height,
		Corrected: res.Corrected,
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleUndo() *Response {
	frame, err := s.mover.Undo()
	if errors.Is(err, mover.ErrNothingToUndo) {
		return NewErrorResponse(err.Error())
	}
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to undo: %v", err))
	}

	resp, _ := NewOKResponse(UndoData{
		X:      frame.X,
		Y:      frame.Y,
		Width:  frame.Width,
		Height: frame.Height,
	})
	return resp
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	s.cfgMu.RLock()
	load := s.loadConfig
	s.cfgMu.RUnlock()

	newCfg, err := load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	moves, last := s.mover.Stats()

	status := StatusData{
		DaemonRunning:           true,
		UptimeSeconds:           int64(time.Since(s.startTime).Seconds()),
		MoveCount:               moves,
		LastPlacement:           last,
		CorrectMonitorMigration: s.GetConfig().CorrectMonitorMigration,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	monitorInfos := make([]MonitorInfo, len(displays))
	for i, d := range displays {
		monitorInfos[i] = MonitorInfo{
			ID:           d.ID,
			Name:         d.Name,
			X:            d.Bounds.X,
			Y:            d.Bounds.Y,
			Width:        d.Bounds.Width,
			Height:       d.Bounds.Height,
			UsableX:      d.Usable.X,
			UsableY:      d.Usable.Y,
			UsableWidth:  d.Usable.Width,
			UsableHeight: d.Usable.Height,
		}
	}

	resp, _ := NewOKResponse(MonitorsData{Monitors: monitorInfos})
	return resp
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// SetConfigLoader replaces the function RELOAD uses to read the config.
func (s *Server) SetConfigLoader(load func() (*config.Config, error)) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.loadConfig = load
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
