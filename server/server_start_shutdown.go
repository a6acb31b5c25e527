package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"panelserver/internal/api/routes"
	"panelserver/server/handlers"
	"panelserver/server/middleware"
)

// Start запускает HTTP сервер
func (s *Server) Start() error {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // генерация документов ждет backend
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Сервер запускается на порту %s", s.config.Port)

	// Запускаем фоновые задачи
	go s.startHealthLogger()

	log.Printf("Starting HTTP server on %s...", s.httpServer.Addr)
	log.Printf("Интерфейс доступен по адресу: http://localhost%s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", s.httpServer.Addr, err)
	}

	return nil
}

func (s *Server) ensureHTTPHandler() (http.Handler, error) {
	s.handlerOnce.Do(func() {
		handler, err := s.buildHTTPHandler()
		if err != nil {
			log.Printf("[ensureHTTPHandler] ✗ ОШИБКА при создании HTTP handler: %v", err)
			s.handlerInitErr = err
			return
		}
		s.httpHandler = handler
	})

	if s.handlerInitErr != nil {
		return nil, s.handlerInitErr
	}
	if s.httpHandler == nil {
		return nil, fmt.Errorf("httpHandler is nil")
	}
	return s.httpHandler, nil
}

func (s *Server) buildHTTPHandler() (http.Handler, error) {
	if s.container == nil || s.container.PanelHandler == nil {
		return nil, fmt.Errorf("container is not initialized")
	}

	// Режим Gin можно переопределить через переменную окружения GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinSecurityHeadersMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware(s.container.Metrics))
	router.Use(middleware.GinRecoveryMiddleware())

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)

	routes.NewRouter(router, s.container).RegisterAllRoutes()
	log.Printf("[buildHTTPHandler] Зарегистрировано событий интерфейса: %d", len(s.container.PanelHandler.EventTypes()))

	return router, nil
}

// ServeHTTP реализует http.Handler для тестов и вспомогательных утилит
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		http.Error(w, "server is not initialized", http.StatusInternalServerError)
		return
	}

	handler.ServeHTTP(w, r)
}

// startHealthLogger периодически пишет состояние компонентов в журнал
func (s *Server) startHealthLogger() {
	ticker := time.NewTicker(healthLogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			s.container.HealthChecker.LogHealthStatus(ctx)
			cancel()
		case <-s.shutdownChan:
			return
		}
	}
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Initiating graceful shutdown...")

	// Останавливаем фоновые задачи
	s.shutdownOnce.Do(func() { close(s.shutdownChan) })

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("ошибка остановки сервера: %w", err)
		}
	}

	if err := s.container.Close(); err != nil {
		log.Printf("Ошибка закрытия контейнера: %v", err)
	}

	log.Println("Graceful shutdown completed")
	return nil
}
