package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track player id -> socket connections
	PlayerConnections map[string]*socket.Socket
	mutex             sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		PlayerConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(playerId string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerConnections[playerId] = socket
}

func (s *SocketServer) RemoveConnection(playerId string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.PlayerConnections, playerId)
}

func (s *SocketServer) GetConnection(playerId string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.PlayerConnections[playerId]
	return socket, exists
}
