package media

import "errors"

var (
	// ErrReferenceMissing indicates a media reference without an id. It is
	// returned before any network call is attempted.
	ErrReferenceMissing = errors.New("media reference id is missing")
	// ErrReferenceNotFound indicates the reference could not be exchanged for a download URL.
	ErrReferenceNotFound = errors.New("media reference not found")
	// ErrDownloadFailed indicates the content download hop failed.
	ErrDownloadFailed = errors.New("media download failed")
	// ErrStorageWriteFailed indicates the content store rejected or failed the write.
	ErrStorageWriteFailed = errors.New("media storage write failed")
	// ErrProviderUnavailable indicates the storage provider is not configured.
	ErrProviderUnavailable = errors.New("storage provider unavailable")
	// ErrAssetTooLarge indicates the payload exceeds the configured max asset size.
	ErrAssetTooLarge = errors.New("media asset too large")
	// ErrPathTraversal indicates a storage key attempted to leave the content directory.
	ErrPathTraversal = errors.New("path traversal is forbidden")
)
