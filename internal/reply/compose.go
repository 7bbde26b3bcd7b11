package reply

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/message"
)

const (
	helpText = "🤖 Available commands:\n" +
		"• hello - Get a greeting\n" +
		"• help - Show this help message\n" +
		"• send image - Get a sample image\n" +
		"• send audio - Get a sample audio\n" +
		"• send video - Get a sample video\n" +
		"• send document - Get a sample document\n" +
		"• Just send me any media and I'll process it!"

	genericErrorText = "Sorry, I encountered an error processing your message."
)

func greetingText(name string) string {
	return fmt.Sprintf("Hello %s! 👋 How can I help you today?", name)
}

func echoText(normalized string) string {
	return "You said: " + strings.ToUpper(normalized)
}

func mediaStoredText(m message.Media, record media.StoredRecord) string {
	lines := []string{
		fmt.Sprintf("✅ Got your %s!", m.MediaKind),
		"📁 Saved as: " + record.Path,
		fmt.Sprintf("📊 Size: %s bytes", humanize.Comma(record.ByteCount)),
	}
	if m.Caption != "" {
		lines = append(lines, "💬 Caption: "+m.Caption)
	}
	if m.Filename != "" {
		lines = append(lines, "📄 Filename: "+m.Filename)
	}
	return strings.Join(lines, "\n")
}

func mediaFailedText(kind media.Kind) string {
	return fmt.Sprintf("❌ Sorry, I couldn't download your %s. Please try again.", kind)
}

func locationText(loc message.Location) string {
	lines := []string{
		"📍 Thanks for sharing your location!",
		fmt.Sprintf("🌐 Coordinates: %s, %s", formatCoordinate(loc.Latitude), formatCoordinate(loc.Longitude)),
	}
	if loc.Name != "" {
		lines = append(lines, "🏷️ Name: "+loc.Name)
	}
	if loc.Address != "" {
		lines = append(lines, "🏠 Address: "+loc.Address)
	}
	return strings.Join(lines, "\n")
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func interactiveText(in message.Interactive) string {
	switch in.Subtype {
	case "button_reply":
		return fmt.Sprintf("🔘 You clicked: %s (ID: %s)", in.Title, in.ID)
	case "list_reply":
		lines := []string{"📋 You selected: " + in.Title}
		if in.Description != "" {
			lines = append(lines, "📝 Description: "+in.Description)
		}
		lines = append(lines, "🆔 ID: "+in.ID)
		return strings.Join(lines, "\n")
	default:
		return "🤖 Received interactive message of type: " + in.Subtype
	}
}

func unsupportedText(kind string) string {
	return fmt.Sprintf("🤷‍♂️ Sorry, I don't support %s messages yet. Try sending text, images, audio, video, documents, or locations!", kind)
}

var sampleEmoji = map[media.Kind]string{
	media.KindImage:    "📸",
	media.KindAudio:    "🎵",
	media.KindVideo:    "🎬",
	media.KindDocument: "📄",
}

func sampleAckText(kind media.Kind) string {
	emoji, ok := sampleEmoji[kind]
	if !ok {
		emoji = "📎"
	}
	return fmt.Sprintf("%s Sending sample %s... Please wait!", emoji, kind)
}

func sampleSentText(kind media.Kind) string {
	return fmt.Sprintf("✅ Sample %s sent successfully!", kind)
}

func sampleFailedText(kind media.Kind) string {
	return fmt.Sprintf("❌ Sorry, I couldn't send the sample %s. Please try again later.", kind)
}
