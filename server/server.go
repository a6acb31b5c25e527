package server

import (
	"net/http"
	"sync"
	"time"

	"panelserver/internal/config"
	"panelserver/internal/container"
)

// healthLogInterval период записи состояния компонентов в журнал
const healthLogInterval = 5 * time.Minute

// Server HTTP сервер интерфейса Panel Entreprises
type Server struct {
	config    *config.Config
	container *container.Container

	httpServer     *http.Server
	httpHandler    http.Handler
	handlerOnce    sync.Once
	handlerInitErr error

	shutdownChan chan struct{}
	shutdownOnce sync.Once
}

// NewServer создает сервер поверх контейнера зависимостей
func NewServer(c *container.Container) *Server {
	return &Server{
		config:       c.Config,
		container:    c,
		shutdownChan: make(chan struct{}),
	}
}

// Container контейнер зависимостей сервера
func (s *Server) Container() *container.Container {
	return s.container
}
