package adaptor

import (
	"sync"

	"art-shop/internal/data/entity"
	"art-shop/internal/dto/response"
	"art-shop/internal/usecase"
)

type Notification struct {
	Message  string           `json:"message"`
	Severity usecase.Severity `json:"severity"`
}

// ViewState is what a browser needs to draw the page: badge, cart panel,
// account menu, open modals and pending toasts.
type ViewState struct {
	CartCount     int                            `json:"cart_count"`
	Cart          response.CartResponse          `json:"cart"`
	User          *response.UserResponse         `json:"user"`
	Summary       *response.SummaryResponse      `json:"summary,omitempty"`
	Confirmation  *response.ConfirmationResponse `json:"confirmation,omitempty"`
	Processing    bool                           `json:"processing"`
	Modals        map[usecase.Modal]bool         `json:"modals"`
	Notifications []Notification                 `json:"notifications,omitempty"`
}

// ViewPresenter keeps the last rendered state in memory. Render calls only
// overwrite fields, so repeating one is harmless.
type ViewPresenter struct {
	mu    sync.Mutex
	state ViewState
}

func NewViewPresenter() *ViewPresenter {
	return &ViewPresenter{
		state: ViewState{
			Cart:   response.CartToResponse(nil, 0),
			Modals: make(map[usecase.Modal]bool),
		},
	}
}

func (v *ViewPresenter) RenderCartCount(total int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.CartCount = total
}

func (v *ViewPresenter) RenderCart(items []entity.CartItem, subtotal float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Cart = response.CartToResponse(items, subtotal)
}

func (v *ViewPresenter) RenderSession(user *entity.User) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.User = response.UserToResponse(user)
}

func (v *ViewPresenter) RenderSummary(summary entity.OrderSummary) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := response.SummaryToResponse(summary)
	v.state.Summary = &s
}

func (v *ViewPresenter) RenderConfirmation(confirmation *entity.Confirmation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Confirmation = response.ConfirmationToResponse(confirmation)
}

func (v *ViewPresenter) SetProcessing(processing bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Processing = processing
}

func (v *ViewPresenter) Notify(message string, severity usecase.Severity) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Notifications = append(v.state.Notifications, Notification{
		Message:  message,
		Severity: severity,
	})
}

func (v *ViewPresenter) SetModal(modal usecase.Modal, open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Modals[modal] = open
	if modal == usecase.ModalConfirmation && !open {
		v.state.Confirmation = nil
	}
}

// Snapshot copies the current state and leaves notifications queued.
func (v *ViewPresenter) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copyLocked()
}

// Flush copies the current state and drains the notification queue, so each
// toast is delivered once.
func (v *ViewPresenter) Flush() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.copyLocked()
	v.state.Notifications = nil
	return state
}

func (v *ViewPresenter) copyLocked() ViewState {
	state := v.state
	state.Modals = make(map[usecase.Modal]bool, len(v.state.Modals))
	for k, open := range v.state.Modals {
		state.Modals[k] = open
	}
	if len(v.state.Notifications) > 0 {
		state.Notifications = append([]Notification(nil), v.state.Notifications...)
	}
	return state
}

var _ usecase.Presenter = (*ViewPresenter)(nil)
