package support

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Service интерфейс страницы поддержки
type Service interface {
	// PrepareContact проверяет форму и строит ссылку mailto
	PrepareContact(form ContactForm) (string, error)
	Ask(ctx context.Context, question string) (string, error)
}

// Assistant AI ассистент, отвечающий на вопросы пользователей
type Assistant interface {
	AskAgent(ctx context.Context, question string) (string, error)
}

// ContactForm форма обращения в поддержку
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate проверяет заполненность полей и формат адреса
func (f ContactForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Subject == "" || f.Message == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(f.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, f.Email)
	}
	return nil
}

// MailtoURL ссылка на почтовый клиент с заполненными темой и текстом
func (f ContactForm) MailtoURL(to string) string {
	subject := "Support Panel Entreprises - " + f.Subject
	body := "Bonjour,\n\nJe souhaite contacter le support pour la raison suivante :\n\n" +
		f.Message + "\n\nCordialement,\n" + f.Name
	return "mailto:" + to + "?subject=" + encodeURIComponent(subject) + "&body=" + encodeURIComponent(body)
}

// QueryEscape кодирует пробел как "+" и экранирует !'()*; почтовые клиенты
// ожидают %20 и эти символы без изменений
var uriComponentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentFixer.Replace(url.QueryEscape(s))
}

// service реализация поддержки
type service struct {
	assistant    Assistant
	supportEmail string
	logger       *slog.Logger
}

// NewService создает сервис поддержки
func NewService(assistant Assistant, supportEmail string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{assistant: assistant, supportEmail: supportEmail, logger: logger}
}

// PrepareContact проверяет форму и возвращает ссылку mailto
func (s *service) PrepareContact(form ContactForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}
	return form.MailtoURL(s.supportEmail), nil
}

// Ask пересылает вопрос ассистенту
func (s *service) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrQuestionRequired
	}

	answer, err := s.assistant.AskAgent(ctx, question)
	if err != nil {
		s.logger.Warn("Assistant query failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrAssistantFailed, err)
	}
	return answer, nil
}
