package repos

import (
	"context"
	"sync"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"
)

// DialFunc opens and verifies a database handle for a DSN.
type DialFunc func(dsn string) (*sqlx.DB, error)

// Pool owns the shared database handle. The first Acquire dials; concurrent
// first-time callers wait on that same attempt instead of opening duplicate
// connections. A successful handle is cached for the process lifetime or
// until Invalidate; a failed attempt is cleared so the next Acquire redials.
type Pool struct {
	dsn  string
	dial DialFunc

	mu    sync.Mutex
	db    *sqlx.DB
	group singleflight.Group
}

// NewPool builds a pool for dsn. A nil dial uses OpenDB.
func NewPool(dsn string, dial DialFunc) *Pool {
	if dial == nil {
		dial = OpenDB
	}
	return &Pool{dsn: dsn, dial: dial}
}

// Acquire returns the ready handle, dialing on first use.
func (p *Pool) Acquire(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	if p.db != nil {
		db := p.db
		p.mu.Unlock()
		return db, nil
	}
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// singleflight dedups concurrent dials and forgets the key once the
	// attempt finishes, so a failure propagates to every waiter and the
	// next Acquire starts a fresh attempt.
	v, err, _ := p.group.Do("dial", func() (any, error) {
		db, err := p.dial(p.dsn)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.db = db
		p.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sqlx.DB), nil
}

// Invalidate drops the cached handle so a future Acquire redials. The old
// handle is closed best-effort.
func (p *Pool) Invalidate() {
	p.mu.Lock()
	db := p.db
	p.db = nil
	p.mu.Unlock()
	if db != nil {
		_ = db.Close()
	}
}

// Close releases the handle at shutdown.
func (p *Pool) Close() error {
	p.mu.Lock()
	db := p.db
	p.db = nil
	p.mu.Unlock()
	if db == nil {
		return nil
	}
	return db.Close()
}
