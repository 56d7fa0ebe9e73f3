// Package notify forwards fleet events to the admin Telegram chat. Sending
// happens on one background goroutine; Notify never blocks a request.
package notify

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"taxifleet/pkg/logger"
)

const queueSize = 64

type INotifier interface {
	Notify(format string, args ...any)
	Run(ctx context.Context) error
}

// Sender is the part of *tele.Bot the notifier needs.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type DropCounter interface {
	IncrementNotifyDropped()
}

type Notifier struct {
	sender  Sender
	chat    tele.ChatID
	log     logger.ILogger
	dropped DropCounter
	queue   chan string
}

// New returns a no-op notifier when token or chatID is unset.
func New(token string, chatID int64, log logger.ILogger, dropped DropCounter) (INotifier, error) {
	if token == "" || chatID == 0 {
		log.Info("admin notifications disabled")
		return Nop{}, nil
	}

	b, err := tele.NewBot(tele.Settings{
		Token:   token,
		Offline: true,
		OnError: func(err error, _ tele.Context) {
			log.Error("telegram error", logger.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return NewWithSender(b, chatID, log, dropped), nil
}

func NewWithSender(sender Sender, chatID int64, log logger.ILogger, dropped DropCounter) *Notifier {
	return &Notifier{
		sender:  sender,
		chat:    tele.ChatID(chatID),
		log:     log,
		dropped: dropped,
		queue:   make(chan string, queueSize),
	}
}

func (n *Notifier) Notify(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	select {
	case n.queue <- msg:
	default:
		n.log.Warning("notification queue full, dropping", logger.String("message", msg))
		if n.dropped != nil {
			n.dropped.IncrementNotifyDropped()
		}
	}
}

// Run drains the queue until ctx is done.
func (n *Notifier) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-n.queue:
			n.send(msg)
		}
	}
}

func (n *Notifier) send(msg string) {
	start := time.Now()
	if _, err := n.sender.Send(n.chat, msg); err != nil {
		n.log.Error("failed to send notification", logger.Error(err))
		return
	}
	n.log.Debug("notification sent", logger.Duration("took", time.Since(start)))
}

type Nop struct{}

func (Nop) Notify(string, ...any) {}

func (Nop) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
