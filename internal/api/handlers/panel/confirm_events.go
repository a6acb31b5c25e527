package panel

import (
	"context"
	"errors"

	"panelserver/internal/api/events"
	"panelserver/internal/domain/confirmation"
	"panelserver/internal/infrastructure/session"
	"panelserver/internal/view"
)

type confirmPayload struct {
	Token     string      `json:"token"`
	Confirmed events.Bool `json:"confirmed"`
}

func (h *Handler) registerConfirmEvents() {
	h.events.Register("confirm.resolve", events.Typed(h.resolveConfirmation))
}

// resolveConfirmation закрывает окно и выполняет действие при согласии.
// Фрагменты действия добавляются после закрытия окна.
func (h *Handler) resolveConfirmation(ctx context.Context, st *session.State, p confirmPayload) (*events.Result, error) {
	res := events.NewResult().Add(view.TargetModal, "")

	out, err := st.Confirmations.Resolve(ctx, p.Token, bool(p.Confirmed))
	if errors.Is(err, confirmation.ErrCanceled) {
		return res, nil
	}
	if err != nil {
		return res, err
	}

	if action, ok := out.(*events.Result); ok && action != nil {
		res.Fragments = append(res.Fragments, action.Fragments...)
		res.Alert = action.Alert
		res.State = action.State
		res.Location = action.Location
	}
	return res, nil
}
