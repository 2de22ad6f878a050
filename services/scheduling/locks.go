package scheduling

import "sync"

// providerLocks hands out one mutex per provider ID so mutating operations
// for the same provider serialize. The transactional repository write is the
// backstop; this keeps the check-then-write window closed even for
// repositories without transaction support.
type providerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (p *providerLocks) get(providerID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.locks == nil {
		p.locks = make(map[string]*sync.Mutex)
	}
	l, ok := p.locks[providerID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[providerID] = l
	}
	return l
}
