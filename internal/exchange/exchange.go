// Package exchange coordinates one message round trip: append the user
// message, invoke the send capability, normalize the reply and append the
// assistant message. A finite state machine drives each submission through
// Idle -> Sending -> {Succeeded, Failed}.
package exchange

import (
	"context"
	"errors"
	"strings"

	"github.com/qmuntal/stateless"

	"github.com/lumachat/luma/internal/chat"
	"github.com/lumachat/luma/internal/logger"
	"github.com/lumachat/luma/internal/text"
)

// FSM states
type FSMState stateless.State

var (
	StateIdle      FSMState = "Idle"
	StateSending   FSMState = "Sending"
	StateSucceeded FSMState = "Succeeded" // terminal: reply normalized and appended
	StateFailed    FSMState = "Failed"    // terminal: failure appended as assistant message
)

// FSM triggers
type FSMTrigger stateless.Trigger

var (
	TriggerSubmit        FSMTrigger = "Submit"
	TriggerSendSucceeded FSMTrigger = "SendSucceeded"
	TriggerSendFailed    FSMTrigger = "SendFailed"
)

// WarningMessage replaces an empty or malformed model reply so the user never
// sees an empty bubble.
const WarningMessage = "⚠️ Something went wrong."

// Status is the outcome classification of one submission.
type Status string

const (
	StatusRejected  Status = "rejected" // empty input, nothing happened
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Sender is the external send capability: one prompt in, one reply out. It is
// the single suspension point of a submission.
type Sender interface {
	Send(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// Outcome reports what a submission did. Discarded is set when the reply
// arrived after its conversation was deleted.
type Outcome struct {
	Status    Status       `json:"status"`
	User      chat.Message `json:"user,omitzero"`
	Assistant chat.Message `json:"assistant,omitzero"`
	Discarded bool         `json:"discarded,omitempty"`
}

// Orchestrator runs submissions against a store and a sender. It holds no
// per-submission state; concurrent submissions are permitted and append in
// completion order.
type Orchestrator struct {
	store  *chat.Store
	sender Sender
}

// New creates an orchestrator.
func New(store *chat.Store, sender Sender) *Orchestrator {
	return &Orchestrator{store: store, sender: sender}
}

// Submit runs one exchange for the given conversation. Empty input is
// rejected silently. Transport failures and malformed replies are surfaced
// as assistant messages, never as returned errors; the returned error is
// reserved for a conversation id that does not resolve at submission time.
func (o *Orchestrator) Submit(ctx context.Context, conversationID, rawUserText string) (Outcome, error) {
	prompt := strings.TrimSpace(rawUserText)
	if prompt == "" {
		return Outcome{Status: StatusRejected}, nil
	}

	conv, ok := o.store.Get(conversationID)
	if !ok {
		return Outcome{}, chat.ErrConversationNotFound
	}

	// Retitle before the send: first message, or a still-generic title.
	if len(conv.Messages) == 0 || conv.HasGenericTitle() {
		if err := o.store.RenameConversation(conversationID, text.TitleFromText(prompt)); err != nil {
			return Outcome{}, err
		}
	}

	userMsg, err := o.store.AppendMessage(conversationID, chat.Message{
		Sender: chat.SenderUser,
		Text:   prompt,
	})
	if err != nil {
		return Outcome{}, err
	}

	type fsmContext struct {
		reply   string
		sendErr error
	}
	fsmCtx := &fsmContext{}
	outcome := Outcome{Status: StatusSucceeded, User: userMsg}

	fsm := stateless.NewStateMachine(StateIdle)

	fsm.Configure(StateIdle).
		Permit(TriggerSubmit, StateSending)

	fsm.Configure(StateSending).
		OnEntry(func(ctx context.Context, _ ...any) error {
			logger.L.Debug("FSM: entering Sending", "conversation", conversationID)
			reply, err := o.sender.Send(ctx, prompt, conv.SystemPrompt)
			if err != nil {
				fsmCtx.sendErr = err
				return fsm.FireCtx(ctx, TriggerSendFailed)
			}
			fsmCtx.reply = reply
			return fsm.FireCtx(ctx, TriggerSendSucceeded)
		}).
		Permit(TriggerSendSucceeded, StateSucceeded).
		Permit(TriggerSendFailed, StateFailed)

	fsm.Configure(StateSucceeded).
		OnEntry(func(_ context.Context, _ ...any) error {
			logger.L.Debug("FSM: entering Succeeded", "conversation", conversationID)
			content := text.Format(text.Sanitize(fsmCtx.reply))
			msg := chat.Message{Sender: chat.SenderAssistant}
			if html := content.HTML(); html != "" {
				msg.Text = html
				msg.IsStructured = true
			} else {
				msg.Text = text.EscapeHTML(WarningMessage)
			}
			outcome.Assistant = o.appendReply(conversationID, msg, &outcome)
			return nil
		})

	fsm.Configure(StateFailed).
		OnEntry(func(_ context.Context, _ ...any) error {
			logger.L.Warn("send failed", "conversation", conversationID, "error", fsmCtx.sendErr)
			outcome.Status = StatusFailed
			msg := chat.Message{
				Sender: chat.SenderAssistant,
				Text:   "Error: " + fsmCtx.sendErr.Error(),
			}
			outcome.Assistant = o.appendReply(conversationID, msg, &outcome)
			return nil
		})

	if err := fsm.FireCtx(ctx, TriggerSubmit); err != nil {
		return Outcome{}, err
	}

	state, err := fsm.State(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if state != StateSucceeded && state != StateFailed {
		return Outcome{}, errors.New("submission ended in unexpected state")
	}
	return outcome, nil
}

// appendReply appends the assistant message, discarding it when the
// conversation was deleted while the send was in flight.
func (o *Orchestrator) appendReply(conversationID string, msg chat.Message, outcome *Outcome) chat.Message {
	appended, err := o.store.AppendMessage(conversationID, msg)
	if err != nil {
		logger.L.Info("conversation gone before reply arrived; discarding", "conversation", conversationID)
		outcome.Discarded = true
		return chat.Message{}
	}
	return appended
}
