package randomizer

import (
	"math/rand"
	"sync"
	"time"
)

type randomizerImpl struct {
	mu  sync.Mutex // Защищает доступ к генератору случайных чисел
	rnd *rand.Rand
}

// New создаёт потокобезопасный randomizer на основе math/rand, засеянный текущим временем.
func New() Randomizer {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded создаёт детерминированный randomizer: одинаковый seed даёт одинаковую последовательность.
func NewSeeded(seed int64) Randomizer {
	return &randomizerImpl{
		rnd: rand.New(rand.NewSource(seed)), // #nosec G404
	}
}

// Intn возвращает случайное число в [0, n).
func (r *randomizerImpl) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}
