package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source источник случайности для выбора вопросов. Подменяется в тестах.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Locked потокобезопасная обертка над *rand.Rand
type Locked struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New создает источник с заданным зерном. При seed == 0 используется текущее время.
func New(seed int64) *Locked {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Locked{rnd: rand.New(rand.NewSource(seed))}
}

// Intn возвращает случайное число из [0, n)
func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

// Shuffle перемешивает n элементов через swap
func (l *Locked) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rnd.Shuffle(n, swap)
}

// Sample выбирает до n различных элементов pool в случайном порядке.
// Исходный срез не изменяется; если элементов меньше n, возвращаются все.
func Sample[T any](src Source, pool []T, n int) []T {
	cpy := make([]T, len(pool))
	copy(cpy, pool)
	src.Shuffle(len(cpy), func(i, j int) {
		cpy[i], cpy[j] = cpy[j], cpy[i]
	})
	if n < 0 {
		n = 0
	}
	if n > len(cpy) {
		n = len(cpy)
	}
	return cpy[:n]
}
