package media

// mimeExtensions maps MIME types to file extensions. Lookups are exact:
// parameters such as "; codecs=opus" are not stripped.
var mimeExtensions = map[string]string{
	// images
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",

	// audio
	"audio/mpeg": ".mp3",
	"audio/mp4":  ".m4a",
	"audio/aac":  ".aac",
	"audio/amr":  ".amr",
	"audio/ogg":  ".ogg",
	"audio/wav":  ".wav",

	// video
	"video/mp4":  ".mp4",
	"video/3gpp": ".3gp",
	"video/webm": ".webm",

	// documents
	"application/pdf":               ".pdf",
	"application/msword":            ".doc",
	"application/vnd.ms-excel":      ".xls",
	"application/vnd.ms-powerpoint": ".ppt",
	"text/plain":                    ".txt",

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
}

// ExtensionForMime returns the catalog extension for an exact MIME match.
func ExtensionForMime(mime string) (string, bool) {
	ext, ok := mimeExtensions[mime]
	return ext, ok
}

// FallbackExtension returns the default extension used when the MIME type
// is not in the catalog.
func FallbackExtension(kind Kind) string {
	switch kind {
	case KindImage:
		return ".jpg"
	case KindAudio:
		return ".mp3"
	case KindVideo:
		return ".mp4"
	case KindDocument:
		return ".pdf"
	default:
		return ".bin"
	}
}

// DeriveFilename names a stored media file. Documents that declare a
// filename keep it behind the reference id; everything else is named
// after its kind with an extension chosen from the MIME type.
func DeriveFilename(kind Kind, referenceID, mime, declaredFilename string) string {
	if declaredFilename != "" && kind == KindDocument {
		return referenceID + "_" + declaredFilename
	}
	ext, ok := ExtensionForMime(mime)
	if !ok {
		ext = FallbackExtension(kind)
	}
	return referenceID + "_" + string(kind) + ext
}
