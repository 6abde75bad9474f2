package socket

import (
	"braindumpBackend/auth"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/zishang520/socket.io/socket"
)

type (
	// SocketManager Represents a wrapper around the socket.io server and keeps track of the principals
	// of connected clients.
	SocketManager interface {
		// Server A reference to the underlying socket.io server.
		Server() *socket.Server

		// GetPrincipal Returns the principal a client connected with. Clients without a token are anonymous.
		GetPrincipal(s *socket.Socket) auth.Principal

		// SocketPrincipalMiddleware Resolves the optional access token of the handshake. Connections with
		// an invalid token are rejected, connections without one are accepted as anonymous.
		SocketPrincipalMiddleware(s *socket.Socket, next func(*socket.ExtendedError))
	}

	socketManager struct {
		server      *socket.Server
		principals  map[string]auth.Principal
		mutex       *sync.Mutex
		authManager auth.AuthManager
	}
)

func CreateSocketManager(authManager auth.AuthManager) SocketManager {
	return &socketManager{
		server:      socket.NewServer(nil, nil),
		principals:  make(map[string]auth.Principal),
		mutex:       &sync.Mutex{},
		authManager: authManager,
	}
}

func (m *socketManager) Server() *socket.Server {
	return m.server
}

func (m *socketManager) GetPrincipal(s *socket.Socket) auth.Principal {
	accessToken, ok := handshakeToken(s)
	if !ok {
		return auth.Anonymous()
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if principal, ok := m.principals[accessToken]; ok {
		return principal
	}
	return auth.Anonymous()
}

func (m *socketManager) SocketPrincipalMiddleware(s *socket.Socket, next func(*socket.ExtendedError)) {
	accessToken, ok := handshakeToken(s)
	if !ok {
		next(nil)
		return
	}

	authUser, err := m.authManager.AuthenticateUser(accessToken)
	if err != nil {
		log.Warn("[SOCKET] Rejected connection with invalid token")
		next(socket.NewExtendedError("Invalid Token", nil))
		return
	}

	m.mutex.Lock()
	m.principals[accessToken] = auth.Authenticated(authUser.UserId)
	m.mutex.Unlock()

	next(nil)
}

func handshakeToken(s *socket.Socket) (string, bool) {
	handshakeAuth, ok := s.Handshake().Auth.(map[string]any)
	if !ok {
		return "", false
	}

	accessToken, ok := handshakeAuth["token"].(string)
	return accessToken, ok && accessToken != ""
}
