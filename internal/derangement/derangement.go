// Package derangement генерирует случайные перестановки без неподвижных точек:
// ни один элемент не остаётся на своей исходной позиции.
package derangement

import (
	"errors"

	"github.com/nojaf/christmas-elm/internal/infrastructure/randomizer"
)

// DefaultMaxAttempts ограничивает число попыток перемешивания до перехода на алгоритм Саттоло.
const DefaultMaxAttempts = 1000

// ErrImpossible возвращается для последовательности из одного элемента.
var ErrImpossible = errors.New("no derangement exists for a single element")

// Assignment описывает результат генерации.
// Perm[i] содержит исходный индекс элемента, который встаёт на позицию i.
type Assignment struct {
	Perm     []int
	Attempts int
	Fallback bool
}

// Generator перемешивает индексы, пока не получит перестановку без неподвижных точек.
type Generator struct {
	rnd         randomizer.Randomizer
	maxAttempts int
}

func New(rnd randomizer.Randomizer, maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{rnd: rnd, maxAttempts: maxAttempts}
}

// Permutation возвращает беспорядок длины n.
// Неподвижная точка определяется по исходной позиции, а не по значению,
// поэтому повторяющиеся идентификаторы обрабатываются корректно.
//
// Для n >= 2 одна попытка успешна с вероятностью не меньше 1/3, так что потолок попыток
// практически недостижим. Если он всё же исчерпан, перестановка строится алгоритмом
// Саттоло (один цикл длины n), который всегда даёт беспорядок за один проход.
func (g *Generator) Permutation(n int) (Assignment, error) {
	switch n {
	case 0:
		return Assignment{Perm: []int{}}, nil
	case 1:
		return Assignment{}, ErrImpossible
	}

	perm := make([]int, n)
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		resetIdentity(perm)
		g.shuffle(perm)
		if !hasFixedPoint(perm) {
			return Assignment{Perm: perm, Attempts: attempt}, nil
		}
	}

	resetIdentity(perm)
	g.sattolo(perm)
	return Assignment{Perm: perm, Attempts: g.maxAttempts, Fallback: true}, nil
}

// Generate возвращает новый срез с элементами items в порядке беспорядка.
// Исходный срез не изменяется.
func Generate[T any](g *Generator, items []T) ([]T, error) {
	a, err := g.Permutation(len(items))
	if err != nil {
		return nil, err
	}
	return Apply(items, a.Perm), nil
}

// Apply раскладывает items по перестановке perm: out[i] = items[perm[i]].
func Apply[T any](items []T, perm []int) []T {
	out := make([]T, len(perm))
	for i, src := range perm {
		out[i] = items[src]
	}
	return out
}

// shuffle реализует Фишера-Йетса: с последнего индекса до 1, обмен с равномерным j из [0, i].
func (g *Generator) shuffle(p []int) {
	for i := len(p) - 1; i >= 1; i-- {
		j := g.rnd.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// sattolo отличается от shuffle только диапазоном j: [0, i).
func (g *Generator) sattolo(p []int) {
	for i := len(p) - 1; i >= 1; i-- {
		j := g.rnd.Intn(i)
		p[i], p[j] = p[j], p[i]
	}
}

func hasFixedPoint(p []int) bool {
	for i, v := range p {
		if v == i {
			return true
		}
	}
	return false
}

func resetIdentity(p []int) {
	for i := range p {
		p[i] = i
	}
}
