package models

import "strings"

// AttachmentSlot names one of the four file fields of an application.
type AttachmentSlot string

const (
	SlotPhoto      AttachmentSlot = "photo"
	SlotTranscript AttachmentSlot = "transcript"
	SlotDomicile   AttachmentSlot = "domicile"
	SlotMatricCert AttachmentSlot = "matricCert"
)

// AdmissionsBucket is the storage bucket holding every uploaded document.
const AdmissionsBucket = "admissions_docs"

// AttachmentSlots is the fixed upload order used at submission.
var AttachmentSlots = []AttachmentSlot{SlotPhoto, SlotTranscript, SlotDomicile, SlotMatricCert}

var slotFolders = map[AttachmentSlot]string{
	SlotPhoto:      "photos",
	SlotTranscript: "transcripts",
	SlotDomicile:   "domicile",
	SlotMatricCert: "certificates",
}

// Folder returns the top-level bucket folder for the slot.
func (s AttachmentSlot) Folder() string {
	return slotFolders[s]
}

// Valid reports whether s is a known slot.
func (s AttachmentSlot) Valid() bool {
	_, ok := slotFolders[s]
	return ok
}

// BucketFolders lists the folders provisioned inside the bucket.
func BucketFolders() []string {
	folders := make([]string, 0, len(AttachmentSlots))
	for _, slot := range AttachmentSlots {
		folders = append(folders, slot.Folder())
	}
	return folders
}

// StagedFile is a picked file held in memory until submission.
type StagedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// IsValidImageType reports whether the detected type is an accepted photo format.
func (f *StagedFile) IsValidImageType() bool {
	validTypes := []string{"image/jpeg", "image/png"}
	for _, validType := range validTypes {
		if strings.EqualFold(f.ContentType, validType) {
			return true
		}
	}
	return false
}

// IsValidDocumentType reports whether the detected type is an accepted scan format.
func (f *StagedFile) IsValidDocumentType() bool {
	return f.IsValidImageType() || strings.EqualFold(f.ContentType, "application/pdf")
}
