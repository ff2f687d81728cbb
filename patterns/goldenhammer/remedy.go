package goldenhammer

import "slices"

func IsEven(n int) bool { return n%2 == 0 }

func Add(a, b int) int { return a + b }

// Reverse reverses s by rune, newlines included.
func Reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}

func Double(data []int) []int {
	out := make([]int, len(data))
	for i, v := range data {
		out[i] = v * 2
	}
	return out
}

func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// Queue is a FIFO backed by a slice. It grows as needed.
type Queue[T any] struct {
	items []T
}

func (q *Queue[T]) Push(v T) { q.items = append(q.items, v) }

func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

func (q *Queue[T]) Len() int { return len(q.items) }

// Set is a map keyed by members.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, v := range items {
		s.Add(v)
	}
	return s
}

func (s Set[T]) Add(v T) { s[v] = struct{}{} }

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// UserInfo replaces the string map.
type UserInfo struct {
	Name  string
	Email string
}

// Engine is what a vehicle actually needs to reuse.
type Engine struct {
	Fuel string
}

func (e Engine) Run() string { return "burning " + e.Fuel }

// Vehicle has an engine instead of being an animal.
type Vehicle struct {
	Engine Engine
}

func (v Vehicle) Drive() string {
	return "driving while " + v.Engine.Run()
}
