package services

import (
	"fmt"

	"admissions-intake-api/models"

	"github.com/gabriel-vasile/mimetype"
)

const (
	PhotoMaxBytes    = int64(2 * 1024 * 1024) // 2MB
	DocumentMaxBytes = int64(5 * 1024 * 1024) // 5MB

	// MaxAttachmentBytes is the most a picker needs to read for any slot.
	MaxAttachmentBytes = DocumentMaxBytes
)

// AttachmentError rejects a picked file for a slot.
type AttachmentError struct {
	Field   string
	Message string
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckAttachment enforces size and type limits for a slot. The content
// type is taken from the bytes, not from what the client claimed.
func CheckAttachment(slot models.AttachmentSlot, file *models.StagedFile) error {
	if file == nil {
		return nil
	}
	field := string(slot)

	if len(file.Data) == 0 {
		return &AttachmentError{Field: field, Message: "File is empty"}
	}

	file.ContentType = mimetype.Detect(file.Data).String()

	if slot == models.SlotPhoto {
		if file.Size > PhotoMaxBytes {
			return &AttachmentError{Field: field, Message: "Photo exceeds 2MB limit"}
		}
		if !file.IsValidImageType() {
			return &AttachmentError{Field: field, Message: "Photo must be JPG or PNG"}
		}
		return nil
	}

	if file.Size > DocumentMaxBytes {
		return &AttachmentError{Field: field, Message: "File size exceeds 5MB limit"}
	}
	if !file.IsValidDocumentType() {
		return &AttachmentError{Field: field, Message: "Accepted formats: PDF, JPG, PNG"}
	}
	return nil
}
