//go:build linux

package term

import "golang.org/x/sys/unix"

// drain flushes the kernel input queue for fd.
func drain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH)
}
