//go:build windows

package discovery

import (
	"net"
	"syscall"
)

// broadcastListenConfig returns a net.ListenConfig that enables
// SO_BROADCAST and SO_REUSEADDR before binding.
func broadcastListenConfig() net.ListenConfig {
	return net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var opErr error
			err := c.Control(func(fd uintptr) {
				opErr = syscall.SetsockoptInt(syscall.Handle(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
				if opErr == nil {
					opErr = syscall.SetsockoptInt(syscall.Handle(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
				}
			})
			if err != nil {
				return err
			}
			return opErr
		},
	}
}
