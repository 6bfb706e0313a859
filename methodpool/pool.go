package methodpool

import "github.com/wippyai/classgen/desc"

// Pool resolves the entry of a method.
type Pool interface {
	Target(m *desc.Method) Entry
}

// MapPool is a Pool keyed by method signature. Unknown methods are skipped.
type MapPool map[string]Entry

// Target implements Pool.
func (p MapPool) Target(m *desc.Method) Entry {
	if e, ok := p[m.Signature()]; ok {
		return e
	}
	return Skip()
}

// Set registers e for m and returns the pool.
func (p MapPool) Set(m *desc.Method, e Entry) MapPool {
	p[m.Signature()] = e
	return p
}

// Empty is a pool that skips every method.
var Empty Pool = MapPool(nil)
