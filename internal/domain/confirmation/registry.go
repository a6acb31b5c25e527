package confirmation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ошибки подтверждения
var (
	ErrUnknownToken = errors.New("unknown or already resolved confirmation")
	ErrCanceled     = errors.New("action canceled by user")
)

// Action отложенное действие, выполняемое после подтверждения
type Action func(ctx context.Context) (any, error)

// Pending ожидающее подтверждение
type Pending struct {
	Token     string
	Message   string
	CreatedAt time.Time
	action    Action
}

// DefaultMaxAge время жизни подтверждения по умолчанию
const DefaultMaxAge = 15 * time.Minute

// Registry хранит ожидающие подтверждения одной сессии.
// Каждый токен разрешается ровно один раз; просроченные удаляются при Ask и Resolve.
type Registry struct {
	mu      sync.Mutex
	pending map[string]*Pending
	maxAge  time.Duration
	now     func() time.Time
}

// NewRegistry создает пустой реестр
func NewRegistry(maxAge time.Duration) *Registry {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Registry{pending: make(map[string]*Pending), maxAge: maxAge, now: time.Now}
}

// Ask регистрирует действие и возвращает данные для окна подтверждения
func (r *Registry) Ask(message string, action Action) Pending {
	p := &Pending{
		Token:     uuid.NewString(),
		Message:   message,
		CreatedAt: r.now(),
		action:    action,
	}

	r.mu.Lock()
	r.expireLocked(r.maxAge)
	r.pending[p.Token] = p
	r.mu.Unlock()

	return *p
}

// Resolve забирает подтверждение и при confirmed выполняет действие.
// Отказ возвращает ErrCanceled без выполнения.
func (r *Registry) Resolve(ctx context.Context, token string, confirmed bool) (any, error) {
	r.mu.Lock()
	r.expireLocked(r.maxAge)
	p, ok := r.pending[token]
	if ok {
		delete(r.pending, token)
	}
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	if !confirmed {
		return nil, ErrCanceled
	}
	return p.action(ctx)
}

// Len число ожидающих подтверждений
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Expire удаляет подтверждения старше maxAge
func (r *Registry) Expire(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expireLocked(maxAge)
}

func (r *Registry) expireLocked(maxAge time.Duration) int {
	cutoff := r.now().Add(-maxAge)
	removed := 0
	for token, p := range r.pending {
		if p.CreatedAt.Before(cutoff) {
			delete(r.pending, token)
			removed++
		}
	}
	return removed
}
