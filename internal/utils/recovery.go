package utils

import (
	log "github.com/sirupsen/logrus"
)

// RunWithRecovery runs fn in a goroutine. A panic is logged with the given
// name and swallowed so the process keeps running.
func RunWithRecovery(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("goroutine", name).Errorf("RECOVERED FROM PANIC: %v", r)
			}
		}()
		fn()
	}()
}
