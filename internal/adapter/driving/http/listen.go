package http

import (
	"context"
	"net"
	"os"
	"strings"
)

const unixPrefix = "unix:"

// Listen opens addr, which is either host:port or unix:/path/to/socket.
// A stale socket file is replaced and the new one is private to the user.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	if !strings.HasPrefix(addr, unixPrefix) {
		var lc net.ListenConfig
		return lc.Listen(ctx, "tcp", addr)
	}

	path := strings.TrimPrefix(addr, unixPrefix)
	_ = os.Remove(path)
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}
