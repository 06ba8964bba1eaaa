//go:build unix

package discovery

import (
	"net"
	"syscall"
)

// broadcastListenConfig returns a net.ListenConfig that enables
// SO_BROADCAST and SO_REUSEADDR before binding, so the reply port can be
// rebound right after a previous run.
func broadcastListenConfig() net.ListenConfig {
	return net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var opErr error
			err := c.Control(func(fd uintptr) {
				opErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
				if opErr == nil {
					opErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
				}
			})
			if err != nil {
				return err
			}
			return opErr
		},
	}
}
