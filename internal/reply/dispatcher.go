package reply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/message"
	"github.com/memohai/wabridge/internal/prune"
	"github.com/memohai/wabridge/internal/samples"
	"github.com/memohai/wabridge/internal/whatsapp"
)

// ErrPanic wraps a panic recovered while handling a message.
var ErrPanic = errors.New("panic while handling message")

// Outbound sends replies and read receipts.
type Outbound interface {
	SendText(ctx context.Context, to, body string) (whatsapp.SendResponse, error)
	MarkAsRead(ctx context.Context, messageID string) error
}

// MediaResolver turns a platform media id into bytes.
type MediaResolver interface {
	Resolve(ctx context.Context, referenceID string) (media.Resolved, error)
}

// MediaPersistor stores resolved media.
type MediaPersistor interface {
	Persist(ctx context.Context, input media.PersistInput) (media.StoredRecord, error)
}

// SampleSender sends catalog samples.
type SampleSender interface {
	Send(ctx context.Context, kind, to string) samples.Result
}

// Dispatcher reacts to one inbound message with read receipt and replies.
type Dispatcher struct {
	out       Outbound
	resolver  MediaResolver
	persistor MediaPersistor
	samples   SampleSender
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(log *slog.Logger, out Outbound, resolver MediaResolver, persistor MediaPersistor, sampleSender SampleSender) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		out:       out,
		resolver:  resolver,
		persistor: persistor,
		samples:   sampleSender,
		logger:    log.With(slog.String("service", "reply")),
	}
}

// Handle marks the message as read, classifies it and sends the matching
// replies. Errors are handled here: when a branch fails the sender gets one
// generic error reply.
func (d *Dispatcher) Handle(ctx context.Context, ev whatsapp.Event) {
	log := d.logger.With(
		slog.String("trace_id", uuid.NewString()),
		slog.String("message_id", ev.Message.ID),
		slog.String("type", ev.Message.Type),
		slog.String("from", ev.SenderID),
	)
	if err := d.out.MarkAsRead(ctx, ev.Message.ID); err != nil {
		log.Warn("mark as read failed", slog.Any("error", err))
	}
	if err := d.route(ctx, log, ev); err != nil {
		log.Error("handle message failed", slog.Any("error", err))
		if _, sendErr := d.out.SendText(ctx, ev.SenderID, genericErrorText); sendErr != nil {
			log.Error("send error reply failed", slog.Any("error", sendErr))
		}
	}
}

func (d *Dispatcher) route(ctx context.Context, log *slog.Logger, ev whatsapp.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	switch n := message.Classify(ev.Message).(type) {
	case message.Text:
		return d.handleText(ctx, log, ev, n)
	case message.Media:
		return d.handleMedia(ctx, log, ev, n)
	case message.Location:
		return d.reply(ctx, ev.SenderID, locationText(n))
	case message.Interactive:
		return d.reply(ctx, ev.SenderID, interactiveText(n))
	case message.Unsupported:
		log.Info("unsupported message")
		return d.reply(ctx, ev.SenderID, unsupportedText(n.RawKind))
	default:
		return fmt.Errorf("unhandled message kind %T", n)
	}
}

func (d *Dispatcher) handleText(ctx context.Context, log *slog.Logger, ev whatsapp.Event, text message.Text) error {
	normalized := normalizeCommand(text.Body)
	cmd := lookupCommand(normalized)
	log.Debug("text message", slog.String("body", normalized))
	switch cmd.kind {
	case commandGreeting:
		return d.reply(ctx, ev.SenderID, greetingText(ev.SenderName))
	case commandHelp:
		return d.reply(ctx, ev.SenderID, helpText)
	case commandSample:
		d.sendSample(ctx, log, ev.SenderID, cmd.sample)
		return nil
	default:
		return d.reply(ctx, ev.SenderID, echoText(normalized))
	}
}

func (d *Dispatcher) handleMedia(ctx context.Context, log *slog.Logger, ev whatsapp.Event, m message.Media) error {
	record, err := d.storeMedia(ctx, m)
	if err != nil {
		log.Warn("media processing failed", slog.String("kind", m.MediaKind.String()), slog.Any("error", err))
		return d.reply(ctx, ev.SenderID, mediaFailedText(m.MediaKind))
	}
	return d.reply(ctx, ev.SenderID, mediaStoredText(m, record))
}

func (d *Dispatcher) storeMedia(ctx context.Context, m message.Media) (media.StoredRecord, error) {
	ref := m.Reference()
	resolved, err := d.resolver.Resolve(ctx, ref.ReferenceID)
	if err != nil {
		return media.StoredRecord{}, err
	}
	return d.persistor.Persist(ctx, media.PersistInput{
		Kind:             ref.Kind,
		ReferenceID:      ref.ReferenceID,
		MimeType:         ref.MimeType,
		DeclaredFilename: ref.DeclaredFilename,
		Bytes:            resolved.Bytes,
	})
}

// sendSample acknowledges, sends the sample and confirms. Failures of the
// acknowledgement or confirmation are only logged.
func (d *Dispatcher) sendSample(ctx context.Context, log *slog.Logger, to string, kind media.Kind) {
	if err := d.reply(ctx, to, sampleAckText(kind)); err != nil {
		log.Warn("sample ack failed", slog.Any("error", err))
	}
	res := d.samples.Send(ctx, kind.String(), to)
	text := sampleSentText(kind)
	if !res.Success() {
		log.Warn("sample send failed", slog.String("kind", kind.String()), slog.String("error", res.Error))
		text = sampleFailedText(kind)
	}
	if err := d.reply(ctx, to, text); err != nil {
		log.Warn("sample confirmation failed", slog.Any("error", err))
	}
}

func (d *Dispatcher) reply(ctx context.Context, to, body string) error {
	_, err := d.out.SendText(ctx, to, prune.Runes(body, prune.MaxTextBodyRunes))
	return err
}
