package goroutine

import (
	"runtime/debug"

	"github.com/befuji/studio-backend/internal/logger"
)

// SafeGo запускает фоновую горутину с перехватом panic. Упавшая отправка
// письма или другой побочный эффект не должны ронять HTTP процесс.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent("goroutine").
					Errorf("panic в фоновой горутине: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
