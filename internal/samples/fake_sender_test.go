package samples

import (
	"context"
	"errors"
	"io"

	"github.com/memohai/wabridge/internal/whatsapp"
)

type sentMedia struct {
	Kind string
	To   string
	Obj  whatsapp.MediaObject
}

type uploaded struct {
	Filename string
	MimeType string
	Content  string
}

type fakeSender struct {
	uploads   []uploaded
	sends     []sentMedia
	uploadErr error
	sendErr   error
}

func (f *fakeSender) UploadMedia(_ context.Context, reader io.Reader, filename, mimeType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, uploaded{Filename: filename, MimeType: mimeType, Content: string(data)})
	return "uploaded-id", nil
}

func (f *fakeSender) send(kind, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error) {
	f.sends = append(f.sends, sentMedia{Kind: kind, To: to, Obj: obj})
	if f.sendErr != nil {
		return whatsapp.SendResponse{}, f.sendErr
	}
	return whatsapp.SendResponse{
		MessagingProduct: "whatsapp",
		Messages:         []whatsapp.SentMessage{{ID: "wamid." + kind}},
	}, nil
}

func (f *fakeSender) SendImage(_ context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error) {
	return f.send("image", to, obj)
}

func (f *fakeSender) SendAudio(_ context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error) {
	return f.send("audio", to, obj)
}

func (f *fakeSender) SendVideo(_ context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error) {
	return f.send("video", to, obj)
}

func (f *fakeSender) SendDocument(_ context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error) {
	return f.send("document", to, obj)
}

var errBoom = errors.New("boom")
