package rpc

import (
	"math/rand"
	"sync"
	"time"
)

// Pool holds the interchangeable hosts of one logical service.
// Reads walk the current permutation in order, writes pick one host at random.
type Pool struct {
	mu    sync.RWMutex
	name  string
	addrs []string
	rand  *rand.Rand
}

// NewPool copies addrs so later changes by the caller are not observed.
func NewPool(name string, addrs []string) *Pool {
	cp := make([]string, len(addrs))
	copy(cp, addrs)

	return &Pool{
		name:  name,
		addrs: cp,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithSeed makes the pool permutations reproducible.
func (p *Pool) WithSeed(seed int64) *Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rand = rand.New(rand.NewSource(seed))
	return p
}

func (p *Pool) Name() string {
	return p.name
}

func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.addrs)
}

// Shuffle installs a fresh random permutation of the hosts.
func (p *Pool) Shuffle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rand.Shuffle(len(p.addrs), func(i, j int) {
		p.addrs[i], p.addrs[j] = p.addrs[j], p.addrs[i]
	})
}

// Endpoints returns a snapshot of the current order.
func (p *Pool) Endpoints() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cp := make([]string, len(p.addrs))
	copy(cp, p.addrs)
	return cp
}

// Random picks one host uniformly. It returns "" for an empty pool.
func (p *Pool) Random() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.addrs) == 0 {
		return ""
	}
	return p.addrs[p.rand.Intn(len(p.addrs))]
}
