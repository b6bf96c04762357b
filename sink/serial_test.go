package sink

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Device != "/dev/ttyACM0" {
		t.Fatalf("unexpected device: %q", cfg.Device)
	}
	if cfg.Baud != 115200 {
		t.Fatalf("expected default baud 115200, got %d", cfg.Baud)
	}
	if cfg.ReadTimeout != 100 {
		t.Fatalf("expected default read timeout 100ms, got %d", cfg.ReadTimeout)
	}
	if cfg.BufferSize != defaultBufferSize {
		t.Fatalf("expected default buffer size %d, got %d", defaultBufferSize, cfg.BufferSize)
	}
}
