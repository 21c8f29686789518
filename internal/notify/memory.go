package notify

import (
	"context"
	"sync"
)

// Shown records one notification displayed by MemoryPlatform.
type Shown struct {
	Title string
	Body  string
}

// MemoryPlatform keeps notifications in process. Answer is what the user
// replies to a permission prompt.
type MemoryPlatform struct {
	mu         sync.Mutex
	permission Permission
	answer     Permission
	prompts    int
	shown      []Shown
}

func NewMemoryPlatform(initial, answer Permission) *MemoryPlatform {
	return &MemoryPlatform{permission: initial, answer: answer}
}

func (m *MemoryPlatform) QueryPermission() Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.permission
}

func (m *MemoryPlatform) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDefault, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts++
	if m.permission == PermissionDefault {
		m.permission = m.answer
	}
	return m.permission, nil
}

func (m *MemoryPlatform) Show(title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, Shown{Title: title, Body: body})
	return nil
}

func (m *MemoryPlatform) Prompts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompts
}

func (m *MemoryPlatform) Shown() []Shown {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Shown, len(m.shown))
	copy(out, m.shown)
	return out
}
