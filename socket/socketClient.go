package socket

import (
	"braindumpBackend/auth"

	"github.com/zishang520/socket.io/socket"
)

// subscriberConnection is a client connected to a channel namespace.
// Its channel set is guarded by the namespace's subscriber mutex.
type subscriberConnection struct {
	principal auth.Principal
	socket    *socket.Socket
	channels  map[string]struct{}
}

func (c *subscriberConnection) id() string {
	return string(c.socket.Id())
}

func (c *subscriberConnection) userName() string {
	if userId, ok := c.principal.UserId(); ok {
		return userId
	}
	return "anonymous"
}
