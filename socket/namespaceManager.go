package socket

import (
	"braindumpBackend/auth"
	"braindumpBackend/events"
	"braindumpBackend/utils"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	socketio "github.com/zishang520/socket.io/socket"
)

const subscribeTimeout = 5 * time.Second

type (
	// ChannelNamespace Manages a socket.io namespace in which clients subscribe to the change notifications
	// of single collections. Every collection maps to one socket.io room named after its channel key.
	//
	// Clients emit 'subscribe' or 'unsubscribe' with the collection ID and an optional acknowledgement.
	// Subscribing requires the client's principal to be allowed to view the collection.
	ChannelNamespace interface {
		events.Publisher

		// SubscriberCount Returns the number of clients subscribed to a channel.
		SubscriberCount(channelKey string) int
	}

	// SubscriptionGuard decides whether a principal may follow a collection.
	SubscriptionGuard interface {
		CanView(ctx context.Context, collectionId string, principal auth.Principal) bool
	}

	channelNamespace struct {
		socketManager SocketManager
		guard         SubscriptionGuard

		// Subscribed socket IDs indexed by channel key
		subscribers      map[string]map[string]struct{}
		subscribersMutex sync.Mutex

		namespaceName string
		namespace     socketio.NamespaceInterface
	}
)

// CreateChannelNamespace Creates the subscription namespace on the socket manager's server.
// The namespace path will be concatenated with slashes to form the namespace name (e.g. [foo, bar] -> /foo/bar).
func CreateChannelNamespace(socketManager SocketManager, guard SubscriptionGuard, namespacePath ...string) ChannelNamespace {
	manager := &channelNamespace{
		socketManager: socketManager,
		guard:         guard,
		subscribers:   make(map[string]map[string]struct{}),
	}

	manager.namespaceName = "/" + strings.Join(namespacePath, "/")
	manager.namespace = socketManager.Server().Of(manager.namespaceName, nil)
	manager.namespace.Use(socketManager.SocketPrincipalMiddleware)

	_ = manager.namespace.On("connection", manager.handleConnection)

	return manager
}

func (m *channelNamespace) Name() string {
	return "socket.io" + m.namespaceName
}

// Publish emits the notification to the channel's room. Channels without subscribers are skipped.
func (m *channelNamespace) Publish(_ context.Context, notification events.Notification) error {
	if m.SubscriberCount(notification.ChannelKey) == 0 {
		return nil
	}

	return m.namespace.To(socketio.Room(notification.ChannelKey)).Emit(notification.Event, notification.Payload)
}

func (m *channelNamespace) SubscriberCount(channelKey string) int {
	m.subscribersMutex.Lock()
	defer m.subscribersMutex.Unlock()

	return len(m.subscribers[channelKey])
}

func (m *channelNamespace) handleConnection(clients ...any) {
	client, ok := clients[0].(*socketio.Socket)
	if !ok {
		log.Errorf("[SOCKET] Received invalid connection: %+v", clients)
		return
	}

	connection := &subscriberConnection{
		principal: m.socketManager.GetPrincipal(client),
		socket:    client,
		channels:  make(map[string]struct{}),
	}

	_ = client.On("subscribe", func(raw ...any) {
		m.handleSubscribe(connection, raw...)
	})

	_ = client.On("unsubscribe", func(raw ...any) {
		m.handleUnsubscribe(connection, raw...)
	})

	_ = client.On("disconnect", func(...any) {
		m.subscribersMutex.Lock()
		for channelKey := range connection.channels {
			m.removeSubscriber(channelKey, connection.id())
		}
		m.subscribersMutex.Unlock()

		log.Info("[SOCKET] Client disconnected from namespace", "namespace", m.namespaceName, "user", connection.userName())
	})

	log.Info("[SOCKET] Client connected to namespace", "namespace", m.namespaceName, "user", connection.userName())
}

func (m *channelNamespace) handleSubscribe(connection *subscriberConnection, raw ...any) {
	collectionId, ack, ok := parseChannelRequest(raw...)
	if !ok {
		respondError(ack, utils.ErrInvalidSocketRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), subscribeTimeout)
	defer cancel()

	// Collections the principal cannot see are reported as missing
	if !m.guard.CanView(ctx, collectionId, connection.principal) {
		respondError(ack, utils.ErrNotFound)
		return
	}

	channelKey := events.ChannelKey(collectionId)
	connection.socket.Join(socketio.Room(channelKey))

	m.subscribersMutex.Lock()
	count := m.addSubscriber(channelKey, connection.id())
	connection.channels[channelKey] = struct{}{}
	m.subscribersMutex.Unlock()

	log.Debug("[SOCKET] Client subscribed to channel", "channel", channelKey, "user", connection.userName(), "subscribers", count)

	if ack != nil {
		ack([]any{utils.CreateSocketOkResponse(channelKey)}, nil)
	}
}

func (m *channelNamespace) handleUnsubscribe(connection *subscriberConnection, raw ...any) {
	collectionId, ack, ok := parseChannelRequest(raw...)
	if !ok {
		respondError(ack, utils.ErrInvalidSocketRequest)
		return
	}

	channelKey := events.ChannelKey(collectionId)
	connection.socket.Leave(socketio.Room(channelKey))

	m.subscribersMutex.Lock()
	m.removeSubscriber(channelKey, connection.id())
	delete(connection.channels, channelKey)
	m.subscribersMutex.Unlock()

	if ack != nil {
		ack([]any{utils.CreateSocketOkResponse(channelKey)}, nil)
	}
}

// addSubscriber expects the subscriber mutex to be held and returns the new subscriber count.
func (m *channelNamespace) addSubscriber(channelKey string, socketId string) int {
	if _, ok := m.subscribers[channelKey]; !ok {
		m.subscribers[channelKey] = make(map[string]struct{})
	}
	m.subscribers[channelKey][socketId] = struct{}{}

	return len(m.subscribers[channelKey])
}

// removeSubscriber expects the subscriber mutex to be held.
func (m *channelNamespace) removeSubscriber(channelKey string, socketId string) {
	if subscribers, ok := m.subscribers[channelKey]; ok {
		delete(subscribers, socketId)
		if len(subscribers) == 0 {
			delete(m.subscribers, channelKey)
		}
	}
}

func parseChannelRequest(raw ...any) (string, func([]any, error), bool) {
	var ack func([]any, error)
	if len(raw) > 1 {
		ack, _ = raw[1].(func([]any, error))
	}

	if len(raw) == 0 {
		return "", ack, false
	}

	collectionId, ok := raw[0].(string)
	collectionId = strings.TrimSpace(collectionId)
	return collectionId, ack, ok && collectionId != ""
}

func respondError(ack func([]any, error), err error) {
	if ack != nil {
		ack([]any{utils.CreateSocketErrorResponse(err)}, nil)
	}
}
