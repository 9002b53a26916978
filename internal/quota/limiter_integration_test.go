//go:build integration

package quota

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) (string, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	return fmt.Sprintf("%s:%s", host, port.Port()), func() {
		container.Terminate(ctx)
	}
}

func TestLimiterFixedWindow(t *testing.T) {
	addr, cleanup := setupRedis(t)
	defer cleanup()

	ctx := context.Background()
	rdb, err := Connect(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer rdb.Close()

	limiter := NewLimiter(rdb, "test:augment", 2, time.Minute)
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	for i, want := range []bool{true, true, false} {
		got, err := limiter.Allow(ctx)
		if err != nil {
			t.Fatalf("Allow #%d: %v", i+1, err)
		}
		if got != want {
			t.Errorf("Allow #%d = %v, want %v", i+1, got, want)
		}
	}

	remaining, err := limiter.Remaining(ctx)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != 0 {
		t.Errorf("Remaining = %d, want 0", remaining)
	}

	// next window starts fresh
	limiter.now = func() time.Time { return fixed.Add(time.Minute) }
	ok, err := limiter.Allow(ctx)
	if err != nil || !ok {
		t.Errorf("Allow in next window = %v, %v; want true, nil", ok, err)
	}

	ttl, err := rdb.TTL(ctx, limiter.windowKey()).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("window key TTL = %v, want within (0, 1m]", ttl)
	}
}

func TestConnectFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := Connect(ctx, "127.0.0.1:1", "", 0); err == nil {
		t.Fatal("expected connection error for closed port")
	}
}
