package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"panelserver/internal/domain/confirmation"
	"panelserver/internal/domain/dashboard"
	"panelserver/internal/domain/directory"
	"panelserver/internal/domain/templates"
	"panelserver/internal/domain/wizard"
)

// Значения по умолчанию
const (
	DefaultTTL        = 2 * time.Hour
	DefaultMaxEntries = 1000
)

// State состояние одного браузера
// Каждый компонент защищен собственным мьютексом, поэтому независимые события
// не блокируют друг друга
type State struct {
	ID            string
	Wizard        *wizard.Session
	Directory     *directory.Browser
	Confirmations *confirmation.Registry

	mu             sync.Mutex
	templateFilter templates.Filter
	projectFilter  dashboard.ProjectFilter
}

// TemplateFilter текущий фильтр каталога шаблонов
func (s *State) TemplateFilter() templates.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templateFilter
}

// SetTemplateFilter запоминает фильтр каталога шаблонов
func (s *State) SetTemplateFilter(f templates.Filter) {
	s.mu.Lock()
	s.templateFilter = f
	s.mu.Unlock()
}

// ProjectFilter текущий фильтр проектов на главной
func (s *State) ProjectFilter() dashboard.ProjectFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectFilter
}

// SetProjectFilter запоминает фильтр проектов
func (s *State) SetProjectFilter(f dashboard.ProjectFilter) {
	s.mu.Lock()
	s.projectFilter = f
	s.mu.Unlock()
}

// Config конфигурация хранилища
type Config struct {
	TTL        time.Duration
	MaxEntries int
	PageSize   int
	// ConfirmTTL время жизни неподтвержденного действия
	ConfirmTTL time.Duration
	// OnEvict вызывается при вытеснении или истечении сессии
	OnEvict func(id string)
}

// Store ограниченное хранилище сессий с TTL
// Каждое обращение продлевает жизнь сессии
type Store struct {
	mu         sync.Mutex
	cache      *expirable.LRU[string, *State]
	pageSize   int
	confirmTTL time.Duration
}

// NewStore создает хранилище сессий
func NewStore(config Config) *Store {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultMaxEntries
	}

	var onEvict expirable.EvictCallback[string, *State]
	if config.OnEvict != nil {
		notify := config.OnEvict
		onEvict = func(id string, _ *State) { notify(id) }
	}

	return &Store{
		cache:      expirable.NewLRU[string, *State](config.MaxEntries, onEvict, config.TTL),
		pageSize:   config.PageSize,
		confirmTTL: config.ConfirmTTL,
	}
}

// Get возвращает существующую сессию и продлевает ее
func (s *Store) Get(id string) (*State, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	s.cache.Add(id, state)
	return state, true
}

// GetOrCreate возвращает сессию по ID; неизвестный или пустой ID дает новую сессию
func (s *Store) GetOrCreate(id string) (state *State, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if existing, ok := s.cache.Get(id); ok {
			s.cache.Add(id, existing)
			return existing, false
		}
	}

	state = s.newState()
	s.cache.Add(state.ID, state)
	return state, true
}

// Remove удаляет сессию
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(id)
}

// Len количество живых сессий
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) newState() *State {
	return &State{
		ID:             uuid.NewString(),
		Wizard:         wizard.NewSession(),
		Directory:      directory.NewBrowser(s.pageSize),
		Confirmations:  confirmation.NewRegistry(s.confirmTTL),
		templateFilter: templates.Filter{Type: templates.FilterAll},
		projectFilter:  dashboard.ProjectFilter{Status: dashboard.StatusFilterAll},
	}
}
