package wizard

import "sync"

// Session владеет состоянием мастера одного браузера.
// Мьютекс держится только на время синхронного изменения состояния;
// сетевые вызовы идут без блокировки под флагом IsProcessing.
type Session struct {
	mu    sync.Mutex
	state State
}

// NewSession создает сессию с мастером на шаге 1
func NewSession() *Session {
	return &Session{state: NewState()}
}

// Snapshot возвращает копию текущего состояния
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// update применяет переход атомарно; при ошибке состояние не меняется
func (s *Session) update(transition func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := transition(s.state)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	return next.Clone(), nil
}

// replace безусловно заменяет состояние
func (s *Session) replace(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return state.Clone()
}
