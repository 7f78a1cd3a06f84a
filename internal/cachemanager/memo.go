package cachemanager

// Memo computes values through fn, remembering results by key(input).
// A nil cache or a disabled memo always calls fn.
type Memo[I any, V any] struct {
	cache    Manager[V]
	key      func(I) string
	fn       func(I) V
	disabled bool
}

// NewMemo creates a memo over cache.
func NewMemo[I any, V any](cache Manager[V], key func(I) string, fn func(I) V, disabled bool) *Memo[I, V] {
	return &Memo[I, V]{cache: cache, key: key, fn: fn, disabled: disabled}
}

// Get returns the cached value for input, computing and storing it on a miss.
func (m *Memo[I, V]) Get(input I) V {
	if m.disabled || m.cache == nil {
		return m.fn(input)
	}

	k := m.key(input)
	if v, ok := m.cache.Get(k); ok {
		return v
	}
	v := m.fn(input)
	m.cache.Set(k, v)
	return v
}

// Invalidate drops every remembered value.
func (m *Memo[I, V]) Invalidate() {
	if m.cache != nil {
		m.cache.Flush()
	}
}
