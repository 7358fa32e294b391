package handlers

import (
	"chowline/cache"
	"chowline/storage"
)

// Wired by main at startup. Reviews is nil-safe; Images must be set
// before the upload routes are served.
var (
	Images  *storage.ImageStore
	Reviews *cache.ReviewCache
)
