package panel

import (
	"context"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/support"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
)

type questionPayload struct {
	Question string `json:"question"`
}

func (h *Handler) registerSupportEvents() {
	h.events.Register("support.contact", events.Typed(h.contactSupport))
	h.events.Register("support.ask", events.Typed(h.askAssistant))
}

// contactSupport возвращает ссылку mailto, которую открывает браузер
func (h *Handler) contactSupport(_ context.Context, _ *session.State, form support.ContactForm) (*events.Result, error) {
	link, err := h.Support.PrepareContact(form)
	if err != nil {
		return nil, err
	}
	res := events.NewResult().WithAlert(events.AlertSuccess, "Votre message a été préparé dans votre client de messagerie.")
	res.Location = link
	return res, nil
}

func (h *Handler) askAssistant(ctx context.Context, _ *session.State, p questionPayload) (*events.Result, error) {
	answer, err := h.Support.Ask(ctx, p.Question)
	if err != nil {
		return nil, err
	}
	res := events.NewResult()
	return res, h.add(res, view.TargetAssistantAnswer, "assistant_answer", view.AssistantAnswerView{
		Question: p.Question,
		Answer:   answer,
	})
}
