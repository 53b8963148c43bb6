package nower

import "time"

type nowerImpl struct{}

// New создаёт реализацию на базе системных часов в UTC.
func New() Nower {
	return &nowerImpl{}
}

// Now возвращает текущее системное время.
func (n *nowerImpl) Now() time.Time {
	return time.Now().UTC()
}

type fixedNower struct {
	t time.Time
}

// Fixed возвращает часы, которые всегда показывают t.
func Fixed(t time.Time) Nower {
	return fixedNower{t: t}
}

func (n fixedNower) Now() time.Time {
	return n.t
}
