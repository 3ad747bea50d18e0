package sessions

import "sync"

// userLock мьютекс пользователя со счетчиком ожидающих
type userLock struct {
	mu   sync.Mutex
	refs int
}

// keyedLocks набор мьютексов по ID пользователя.
// Запись удаляется, когда мьютекс больше никто не держит и не ждет.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

func (k *keyedLocks) lock(userID int64) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[int64]*userLock)
	}
	l, ok := k.locks[userID]
	if !ok {
		l = &userLock{}
		k.locks[userID] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, userID)
		}
		k.mu.Unlock()
	}
}

func (k *keyedLocks) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
