package daemon

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/b/solar-console/pkg/logging"
)

// ErrAlreadyRunning is returned by Start when another console owns the socket.
var ErrAlreadyRunning = errors.New("console already running")

const (
	// Messages queued per client before it is considered stuck and dropped.
	outboxSize   = 32
	writeTimeout = time.Second
)

// clientConn is one connected client. All writes go through out and are
// drained by the client's own writer goroutine.
type clientConn struct {
	id         string
	conn       net.Conn
	out        chan []byte
	closed     chan struct{}
	closeOnce  sync.Once
	subscribed bool // guarded by Server.clientsMu
}

func (c *clientConn) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.conn.Close()
	})
}

// Server accepts remote-control clients on a unix socket
type Server struct {
	socketPath string
	pidPath    string
	listener   net.Listener
	log        *logrus.Entry

	clients   map[*clientConn]struct{}
	clientsMu sync.RWMutex
	done      chan struct{}
	stopOnce  sync.Once

	// stateMu also orders a new subscriber's first state against Publish.
	stateMu     sync.Mutex
	sequenceNum uint64
	latest      *StatePayload

	// OnInput is called from the client goroutine for every valid input.
	// It must not block; the console forwards it into its update loop.
	OnInput func(clientID string, input *InputPayload)
}

// NewServer creates a server for the given socket path. The pidfile sits
// next to the socket.
func NewServer(socketPath string) *Server {
	return &Server{
		socketPath: socketPath,
		pidPath:    PidPath(socketPath),
		log:        logging.NewLogger("remote"),
		clients:    make(map[*clientConn]struct{}),
		done:       make(chan struct{}),
	}
}

// PidPath returns the pidfile path for a socket
func PidPath(socketPath string) string {
	return strings.TrimSuffix(socketPath, ".sock") + ".pid"
}

// Start begins listening for client connections
func (s *Server) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}
	if err := s.checkAndClaimPid(); err != nil {
		return err
	}

	// Safe now that we own the pidfile
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		os.Remove(s.pidPath)
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener
	s.log.WithField("socket", s.socketPath).Info("remote control listening")

	go s.acceptLoop()
	return nil
}

// checkAndClaimPid checks for a live owner and claims the pidfile
func (s *Server) checkAndClaimPid() error {
	if data, err := os.ReadFile(s.pidPath); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && pid > 0 && pid != os.Getpid() {
			if process, err := os.FindProcess(pid); err == nil {
				// FindProcess always succeeds on Unix; signal 0 probes liveness
				if err := process.Signal(syscall.Signal(0)); err == nil {
					return fmt.Errorf("%w with pid %d", ErrAlreadyRunning, pid)
				}
			}
		}
		os.Remove(s.pidPath)
	}

	if err := os.WriteFile(s.pidPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write pidfile: %w", err)
	}
	return nil
}

// Stop shuts down the server. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.clientsMu.Lock()
		for c := range s.clients {
			c.close()
			delete(s.clients, c)
		}
		s.clientsMu.Unlock()
		os.Remove(s.socketPath)
		os.Remove(s.pidPath)
	})
}

// ClientCount returns the number of subscribed clients
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	n := 0
	for c := range s.clients {
		if c.subscribed {
			n++
		}
	}
	return n
}

// SocketPath returns the socket path
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Publish stamps the state with the next sequence number, keeps it for new
// subscribers and queues it for every subscribed client. It never waits on
// a client; one that has stopped reading is dropped.
func (s *Server) Publish(state *StatePayload) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.sequenceNum++
	state.SequenceNum = s.sequenceNum
	s.latest = state

	s.clientsMu.RLock()
	subs := make([]*clientConn, 0, len(s.clients))
	for c := range s.clients {
		if c.subscribed {
			subs = append(subs, c)
		}
	}
	s.clientsMu.RUnlock()

	for _, c := range subs {
		s.enqueue(c, Message{Type: MsgState, ClientID: c.id, Payload: state})
	}
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.WithError(err).Warn("accept failed")
			time.Sleep(50 * time.Millisecond)
			continue
		}
		go s.handleClient(conn)
	}
}

// handleClient processes messages from one client until it disconnects
func (s *Server) handleClient(conn net.Conn) {
	c := &clientConn{
		conn:   conn,
		out:    make(chan []byte, outboxSize),
		closed: make(chan struct{}),
	}
	s.clientsMu.Lock()
	select {
	case <-s.done:
		s.clientsMu.Unlock()
		conn.Close()
		return
	default:
	}
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()

	go s.writeLoop(c)
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, c)
		s.clientsMu.Unlock()
		c.close()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			s.sendError(c, fmt.Errorf("%w: %v", ErrInvalidInput, err))
			continue
		}
		if c.id == "" && msg.ClientID != "" {
			c.id = msg.ClientID
		}

		switch msg.Type {
		case MsgSubscribe:
			s.subscribe(c)

		case MsgUnsubscribe:
			return

		case MsgInput:
			var input InputPayload
			if err := decodePayload(msg.Payload, &input); err != nil {
				s.sendError(c, err)
				continue
			}
			if err := input.Validate(); err != nil {
				s.sendError(c, err)
				continue
			}
			s.log.WithFields(logrus.Fields{"client": c.id, "command": input.Command}).Debug("input")
			if s.OnInput != nil {
				s.OnInput(c.id, &input)
			}

		case MsgPing:
			s.enqueue(c, Message{Type: MsgPong})

		default:
			s.sendError(c, fmt.Errorf("%w: unknown message type %q", ErrInvalidInput, msg.Type))
		}
	}
}

// subscribe marks c for state updates and queues the latest state. Holding
// stateMu keeps that first state ahead of any later publish.
func (s *Server) subscribe(c *clientConn) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.clientsMu.Lock()
	if c.id == "" {
		c.id = c.conn.RemoteAddr().String() + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	c.subscribed = true
	s.clientsMu.Unlock()
	s.log.WithField("client", c.id).Debug("subscribed")

	if s.latest != nil {
		s.enqueue(c, Message{Type: MsgState, ClientID: c.id, Payload: s.latest})
	}
}

func (s *Server) sendError(c *clientConn, err error) {
	s.enqueue(c, Message{Type: MsgError, Payload: ErrorPayload{Message: err.Error()}})
}

// enqueue queues one line for c without blocking. A client whose queue is
// full is closed.
func (s *Server) enqueue(c *clientConn, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.WithError(err).Warn("encode message")
		return
	}
	select {
	case <-c.closed:
	case c.out <- append(data, '\n'):
	default:
		s.log.WithField("client", c.id).Warn("client not reading, dropping it")
		c.close()
	}
}

// writeLoop drains c's queue until the client is closed or a write fails.
func (s *Server) writeLoop(c *clientConn) {
	for {
		select {
		case <-c.closed:
			return
		case data := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if _, err := c.conn.Write(data); err != nil {
				s.log.WithError(err).Debug("client write failed")
				c.close()
				return
			}
		}
	}
}
