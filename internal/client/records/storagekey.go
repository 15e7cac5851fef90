package records

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/fraudcheck/internal/common"
)

// StorageKey names an uploaded file: <userID>/<unix millis>-<unique>.<ext>.
func StorageKey(userID string, at time.Time, unique, ext string) string {
	return fmt.Sprintf("%s/%d-%s.%s", userID, at.UnixMilli(), unique, ext)
}

// AcceptedExtension reports whether ext (lower case, no dot) may be attached.
func AcceptedExtension(ext string) bool {
	return slices.Contains(common.AcceptedAttachmentExtensions, ext)
}
