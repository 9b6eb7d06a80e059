package posts

import "sync"

// postLocks serializes load-mutate-save per post id. Entries are dropped
// once nobody holds or waits for them.
type postLocks struct {
	mu    sync.Mutex
	locks map[string]*postLock
}

type postLock struct {
	mu   sync.Mutex
	refs int
}

func newPostLocks() *postLocks {
	return &postLocks{locks: make(map[string]*postLock)}
}

func (l *postLocks) lock(postId string) (unlock func()) {
	l.mu.Lock()
	pl, found := l.locks[postId]
	if !found {
		pl = &postLock{}
		l.locks[postId] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, postId)
		}
		l.mu.Unlock()
	}
}

func (l *postLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
