package repos

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
)

func TestPoolDialsOnce(t *testing.T) {
	var dials int32
	dial := func(dsn string) (*sqlx.DB, error) {
		atomic.AddInt32(&dials, 1)
		time.Sleep(20 * time.Millisecond) // widen the race window
		return OpenDB(dsn)
	}
	p := NewPool(":memory:", dial)
	defer p.Close()

	const n = 16
	handles := make([]*sqlx.DB, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			db, err := p.Acquire(context.Background())
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			handles[i] = db
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&dials); got != 1 {
		t.Fatalf("expected exactly 1 dial, got %d", got)
	}
	for i := 1; i < n; i++ {
		if handles[i] != handles[0] {
			t.Fatal("concurrent acquires returned different handles")
		}
	}
}

func TestPoolFailurePropagatesAndRedials(t *testing.T) {
	boom := errors.New("dial refused")
	var dials int32
	dial := func(dsn string) (*sqlx.DB, error) {
		if atomic.AddInt32(&dials, 1) == 1 {
			return nil, boom
		}
		return OpenDB(dsn)
	}
	p := NewPool(":memory:", dial)
	defer p.Close()

	if _, err := p.Acquire(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected dial error, got %v", err)
	}
	// the failed attempt must not be cached
	db, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if db == nil {
		t.Fatal("nil handle after successful redial")
	}
	if got := atomic.LoadInt32(&dials); got != 2 {
		t.Fatalf("expected 2 dials, got %d", got)
	}
}

func TestPoolInvalidateForcesRedial(t *testing.T) {
	var dials int32
	dial := func(dsn string) (*sqlx.DB, error) {
		atomic.AddInt32(&dials, 1)
		return OpenDB(dsn)
	}
	p := NewPool(":memory:", dial)
	defer p.Close()

	first, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	p.Invalidate()
	second, err := p.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("invalidate should drop the cached handle")
	}
	if got := atomic.LoadInt32(&dials); got != 2 {
		t.Fatalf("expected 2 dials, got %d", got)
	}
}

func TestPoolHonoursCancelledContext(t *testing.T) {
	p := NewPool(":memory:", nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
