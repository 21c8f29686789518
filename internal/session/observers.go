package session

import (
	"sync"

	"github.com/sandeepkv93/flowo/internal/model"
)

type observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(*model.User)
}

func (o *observers) add(fn func(*model.User)) func() {
	o.mu.Lock()
	if o.fns == nil {
		o.fns = make(map[int]func(*model.User))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

// emit calls every observer outside the lock with its own copy of u.
func (o *observers) emit(u *model.User) {
	o.mu.Lock()
	fns := make([]func(*model.User), 0, len(o.fns))
	for _, fn := range o.fns {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(copyUser(u))
	}
}

func (o *observers) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}

func copyUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
