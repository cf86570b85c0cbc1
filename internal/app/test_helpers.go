package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App with debug logging whose stdout and stderr are
// captured in the returned buffers.
func SetupAppTest(t *testing.T, config *Config, loader Loader) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuf, errBuf := &SafeBuffer{}, &SafeBuffer{}
	config.LogLevel = "debug"
	testApp := NewApp(outBuf, errBuf, config, loader)

	t.Cleanup(func() {
		if os.Getenv("ENSURE_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\nstdout:\n%s\nstderr:\n%s", t.Name(), outBuf.String(), errBuf.String())
		}
	})

	return testApp, outBuf, errBuf
}
