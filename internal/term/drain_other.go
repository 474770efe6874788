//go:build !linux

package term

// drain is a no-op where no portable input flush is available; the
// bufio reset in Terminal.Drain still discards user-space buffering.
func drain(int) error { return nil }
