package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"admissions-intake-api/models"
	"admissions-intake-api/services"
	"admissions-intake-api/utils"

	"github.com/gin-gonic/gin"
)

var errNoFileUploaded = errors.New("No file uploaded")

// multipartPicker yields the file sent in a multipart form field.
type multipartPicker struct {
	c     *gin.Context
	field string
}

func (p multipartPicker) PickFile() (*models.StagedFile, error) {
	header, err := p.c.FormFile(p.field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errNoFileUploaded
		}
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	// Anything past the largest allowed size is only needed to prove the
	// file is too big.
	data, err := io.ReadAll(io.LimitReader(f, services.MaxAttachmentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	size := header.Size
	if n := int64(len(data)); n > size {
		size = n
	}

	return &models.StagedFile{
		Name: utils.SanitizeFilename(header.Filename),
		Size: size,
		Data: data,
	}, nil
}

// emptyPicker clears a slot.
var emptyPicker = services.FilePickerFunc(func() (*models.StagedFile, error) {
	return nil, nil
})
