package eventbus

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

type Handler func(domain.Change)

type subscriber struct {
	id      uint64
	handler Handler
}

// Publisher fans a change out to every subscriber, in subscription order.
// A panicking handler is logged and skipped; the others still run.
type Publisher struct {
	mu     sync.RWMutex
	log    *slog.Logger
	nextID uint64
	subs   []subscriber
}

func NewPublisher(log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Publisher{log: log}
}

var _ ports.ChangeNotifier = (*Publisher)(nil)

// Subscribe registers h and returns a func that removes it.
func (p *Publisher) Subscribe(h Handler) (unsubscribe func()) {
	if h == nil {
		panic("eventbus: nil handler")
	}

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscriber{id: id, handler: h})
	p.mu.Unlock()

	return func() { p.unsubscribe(id) }
}

func (p *Publisher) unsubscribe(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.subs {
		if s.id == id {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			return
		}
	}
}

func (p *Publisher) Publish(change domain.Change) {
	p.mu.RLock()
	subs := make([]subscriber, len(p.subs))
	copy(subs, p.subs)
	p.mu.RUnlock()

	if len(subs) == 0 {
		p.log.Debug("eventbus.publish.no_subscribers",
			"entity", string(change.Entity),
			"op", string(change.Op),
		)
		return
	}

	for _, s := range subs {
		p.call(s, change)
	}
}

func (p *Publisher) call(s subscriber, change domain.Change) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("eventbus.handler.panicked",
				"subscriber", s.id,
				"entity", string(change.Entity),
				"op", string(change.Op),
				"panic", fmt.Sprint(r),
			)
		}
	}()
	s.handler(change)
}

func (p *Publisher) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}
