package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"admissions-intake-api/models"
	"admissions-intake-api/services"

	"github.com/gin-gonic/gin"
)

// WizardRoute is the base path of the intake wizard endpoints.
const WizardRoute = "/api/v1/admissions/wizard"

// AdmissionHandler serves the intake wizard and the admin listing.
type AdmissionHandler struct {
	wizards *services.WizardStore
	lister  services.AdmissionLister
}

func NewAdmissionHandler(wizards *services.WizardStore, lister services.AdmissionLister) *AdmissionHandler {
	return &AdmissionHandler{wizards: wizards, lister: lister}
}

type updateFieldsRequest struct {
	Name   string            `json:"name" binding:"omitempty,formfield"`
	Value  string            `json:"value" binding:"max=2000"`
	Fields map[string]string `json:"fields" binding:"omitempty,dive,keys,formfield,endkeys,max=2000"`
}

func photoPreviewURL(sessionID string, state services.WizardState) string {
	if state.PhotoPreviewID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/photo-preview/%s", WizardRoute, sessionID, state.PhotoPreviewID)
}

func wizardResponse(sessionID string, state services.WizardState) gin.H {
	resp := gin.H{
		"session_id": sessionID,
		"state":      state,
	}
	if url := photoPreviewURL(sessionID, state); url != "" {
		resp["photo_preview_url"] = url
	}
	if state.Submitted {
		resp["message"] = "Your admission application has been received successfully."
	}
	return resp
}

func (h *AdmissionHandler) wizard(c *gin.Context) (*services.Wizard, bool) {
	wizard, err := h.wizards.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application session not found"})
		return nil, false
	}
	return wizard, true
}

// respondWizardError maps wizard errors onto HTTP responses.
func respondWizardError(c *gin.Context, sessionID string, state *services.WizardState, err error) {
	var attErr *services.AttachmentError
	body := gin.H{"error": err.Error()}
	if state != nil {
		body["state"] = *state
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, body)
	case errors.Is(err, services.ErrSubmissionInFlight), errors.Is(err, services.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, services.ErrUnknownField), errors.Is(err, services.ErrUnknownSlot),
		errors.Is(err, errNoFileUploaded):
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &attErr):
		body["error"] = attErr.Message
		body["errors"] = gin.H{attErr.Field: attErr.Message}
		c.JSON(http.StatusBadRequest, body)
	default:
		log.Printf("wizard %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, body)
	}
}

// StartWizard creates an empty application session
func (h *AdmissionHandler) StartWizard(c *gin.Context) {
	id, wizard := h.wizards.Create()
	c.JSON(http.StatusCreated, wizardResponse(id, wizard.State()))
}

// GetWizard returns the current wizard state
func (h *AdmissionHandler) GetWizard(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wizardResponse(c.Param("id"), wizard.State()))
}

// UpdateFields sets one field ({"name","value"}) or several ({"fields":{...}})
func (h *AdmissionHandler) UpdateFields(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	var req updateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" && len(req.Fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name or fields is required"})
		return
	}

	sessionID := c.Param("id")
	if req.Name != "" {
		if err := wizard.UpdateField(req.Name, req.Value); err != nil {
			respondWizardError(c, sessionID, nil, err)
			return
		}
	}
	for name, value := range req.Fields {
		if err := wizard.UpdateField(name, value); err != nil {
			respondWizardError(c, sessionID, nil, err)
			return
		}
	}

	c.JSON(http.StatusOK, wizardResponse(sessionID, wizard.State()))
}

// UploadAttachment stages the multipart "file" in an attachment slot
func (h *AdmissionHandler) UploadAttachment(c *gin.Context) {
	h.setAttachment(c, multipartPicker{c: c, field: "file"})
}

// RemoveAttachment empties an attachment slot
func (h *AdmissionHandler) RemoveAttachment(c *gin.Context) {
	h.setAttachment(c, emptyPicker)
}

func (h *AdmissionHandler) setAttachment(c *gin.Context, picker services.FilePicker) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	sessionID := c.Param("id")
	slot := models.AttachmentSlot(c.Param("slot"))
	if err := wizard.SetAttachment(slot, picker); err != nil {
		respondWizardError(c, sessionID, nil, err)
		return
	}

	c.JSON(http.StatusOK, wizardResponse(sessionID, wizard.State()))
}

// GetPhotoPreview streams the staged passport photo
func (h *AdmissionHandler) GetPhotoPreview(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	photo, found := wizard.PhotoPreview(c.Param("preview"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preview not found"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

// GoBack returns to the previous step
func (h *AdmissionHandler) GoBack(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	sessionID := c.Param("id")
	state, err := wizard.GoBack()
	if err != nil {
		respondWizardError(c, sessionID, &state, err)
		return
	}
	c.JSON(http.StatusOK, wizardResponse(sessionID, state))
}

// Advance validates the current step and moves forward; on the review
// step it submits the application
func (h *AdmissionHandler) Advance(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	sessionID := c.Param("id")
	state, err := wizard.Advance(c.Request.Context())
	if err != nil {
		// Anything but the guards comes from the submission sequence.
		if !errors.Is(err, services.ErrSubmissionInFlight) && !errors.Is(err, services.ErrAlreadySubmitted) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Submission Error: " + err.Error(),
				"state": state,
			})
			return
		}
		respondWizardError(c, sessionID, &state, err)
		return
	}

	if len(state.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Please correct the highlighted fields",
			"errors": state.Errors,
			"state":  state,
		})
		return
	}

	c.JSON(http.StatusOK, wizardResponse(sessionID, state))
}

// DiscardSession drops the wizard named in the route, if any.
func (h *AdmissionHandler) DiscardSession(c *gin.Context, _ error) {
	if id := c.Param("id"); id != "" {
		h.wizards.Discard(id)
	}
}
