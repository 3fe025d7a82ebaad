package goroutine

import (
	"testing"
	"time"
)

func TestSafeGo_RunsFunction(t *testing.T) {
	done := make(chan struct{})
	SafeGo(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("горутина не запустилась")
	}
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	panicked := make(chan struct{})
	SafeGo(func() {
		defer close(panicked)
		panic("boom")
	})

	// Если panic не перехватился, процесс теста упал бы целиком.
	select {
	case <-panicked:
	case <-time.After(time.Second):
		t.Fatal("горутина не отработала")
	}
}
