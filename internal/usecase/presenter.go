package usecase

import (
	"context"
	"sync"

	"art-shop/internal/data/entity"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Modal string

const (
	ModalLogin        Modal = "login"
	ModalSignup       Modal = "signup"
	ModalCheckout     Modal = "checkout"
	ModalConfirmation Modal = "confirmation"
	ModalDelivery     Modal = "delivery"
)

// Presenter is the rendering collaborator. Every call takes plain data and
// must be idempotent; implementations never read back from the stores.
type Presenter interface {
	RenderCartCount(total int)
	RenderCart(items []entity.CartItem, subtotal float64)
	RenderSession(user *entity.User)
	RenderSummary(summary entity.OrderSummary)
	RenderConfirmation(confirmation *entity.Confirmation)
	SetProcessing(processing bool)
	Notify(message string, severity Severity)
	SetModal(modal Modal, open bool)
}

// NopPresenter discards every render call.
type NopPresenter struct{}

func (NopPresenter) RenderCartCount(int)                     {}
func (NopPresenter) RenderCart([]entity.CartItem, float64)   {}
func (NopPresenter) RenderSession(*entity.User)              {}
func (NopPresenter) RenderSummary(entity.OrderSummary)       {}
func (NopPresenter) RenderConfirmation(*entity.Confirmation) {}
func (NopPresenter) SetProcessing(bool)                      {}
func (NopPresenter) Notify(string, Severity)                 {}
func (NopPresenter) SetModal(Modal, bool)                    {}

// Note is one toast raised while handling a single event.
type Note struct {
	Message  string
	Severity Severity
}

type noteLogKey struct{}

type noteLog struct {
	mu    sync.Mutex
	notes []Note
}

// WithNoteLog returns a context that records the toasts raised by storefront
// calls made with it. The presenter still receives every toast.
func WithNoteLog(ctx context.Context) context.Context {
	return context.WithValue(ctx, noteLogKey{}, &noteLog{})
}

// NotesFrom returns the toasts recorded in ctx. ok is false when ctx has no
// note log.
func NotesFrom(ctx context.Context) (notes []Note, ok bool) {
	l, ok := ctx.Value(noteLogKey{}).(*noteLog)
	if !ok {
		return nil, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Note(nil), l.notes...), true
}

func recordNote(ctx context.Context, n Note) {
	if l, ok := ctx.Value(noteLogKey{}).(*noteLog); ok {
		l.mu.Lock()
		l.notes = append(l.notes, n)
		l.mu.Unlock()
	}
}
