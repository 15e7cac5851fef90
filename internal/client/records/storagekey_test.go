package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "user-1/1700000000123-abc.pdf", StorageKey("user-1", at, "abc", "pdf"))
}

func TestAcceptedExtension(t *testing.T) {
	for _, ext := range []string{"pdf", "doc", "docx", "jpg", "jpeg", "png"} {
		assert.True(t, AcceptedExtension(ext), ext)
	}
	for _, ext := range []string{"", "exe", "PDF", "gif", "txt"} {
		assert.False(t, AcceptedExtension(ext), ext)
	}
}
