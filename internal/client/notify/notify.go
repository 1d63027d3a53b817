// Package notify shows short user-visible notifications ("toasts") on the
// console and keeps the catalogue of messages the session core emits.
package notify

import "context"

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Notification struct {
	Kind    Kind
	Message string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

func Success(msg string) Notification { return Notification{Kind: KindSuccess, Message: msg} }
func Info(msg string) Notification { return Notification{Kind: KindInfo, Message: msg} }
func Warning(msg string) Notification { return Notification{Kind: KindWarning, Message: msg} }
func Error(msg string) Notification { return Notification{Kind: KindError, Message: msg} }

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(context.Context, Notification) {}
