package services

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"admissions-intake-api/metrics"
	"admissions-intake-api/models"

	"github.com/google/uuid"
)

var (
	ErrUnknownField       = errors.New("unknown form field")
	ErrUnknownSlot        = errors.New("unknown attachment slot")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrAlreadySubmitted   = errors.New("application already submitted")
)

// Submitter performs the submission sequence for a completed form and
// returns the reference code.
type Submitter interface {
	Submit(ctx context.Context, form *models.ApplicationForm) (string, error)
}

// FilePicker yields the file chosen for an attachment slot. A nil file
// with a nil error means nothing was picked.
type FilePicker interface {
	PickFile() (*models.StagedFile, error)
}

// FilePickerFunc adapts a function to FilePicker.
type FilePickerFunc func() (*models.StagedFile, error)

func (f FilePickerFunc) PickFile() (*models.StagedFile, error) { return f() }

// WizardState is a serializable snapshot of a wizard.
type WizardState struct {
	Record         *models.ApplicationForm `json:"record,omitempty"`
	CurrentStep    int                     `json:"current_step"`
	StepTitle      string                  `json:"step_title"`
	Errors         map[string]string       `json:"errors"`
	Submitting     bool                    `json:"submitting"`
	Submitted      bool                    `json:"submitted"`
	ReferenceCode  string                  `json:"reference_code,omitempty"`
	PhotoPreviewID string                  `json:"photo_preview_id,omitempty"`
}

// Wizard holds one in-progress application and walks it through the
// steps. It is safe for concurrent use; while a submission is running the
// step cannot change.
type Wizard struct {
	mu             sync.Mutex
	form           *models.ApplicationForm
	step           int
	errors         map[string]string
	submitting     bool
	submitted      bool
	referenceCode  string
	photoPreviewID string

	submitter Submitter
	metrics   *metrics.Metrics
}

func NewWizard(submitter Submitter, m *metrics.Metrics) *Wizard {
	return &Wizard{
		form:      &models.ApplicationForm{},
		errors:    map[string]string{},
		submitter: submitter,
		metrics:   m,
	}
}

// State returns a snapshot.
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() WizardState {
	errs := make(map[string]string, len(w.errors))
	for k, v := range w.errors {
		errs[k] = v
	}
	state := WizardState{
		CurrentStep:    w.step,
		StepTitle:      StepTitle(w.step),
		Errors:         errs,
		Submitting:     w.submitting,
		Submitted:      w.submitted,
		ReferenceCode:  w.referenceCode,
		PhotoPreviewID: w.photoPreviewID,
	}
	if w.form != nil {
		state.Record = w.form.Clone()
	}
	return state
}

// UpdateField sets one scalar field. Errors for other fields are kept.
func (w *Wizard) UpdateField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.submitting {
		return ErrSubmissionInFlight
	}
	if !models.IsFormField(name) {
		return ErrUnknownField
	}
	return w.form.SetField(name, value)
}

// SetAttachment replaces the file in slot with whatever picker yields.
// Picking the photo also derives a preview reference for it.
func (w *Wizard) SetAttachment(slot models.AttachmentSlot, picker FilePicker) error {
	if !slot.Valid() {
		return ErrUnknownSlot
	}

	file, err := picker.PickFile()
	if err != nil {
		return err
	}
	if err := CheckAttachment(slot, file); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.submitting {
		return ErrSubmissionInFlight
	}

	w.form.SetAttachment(slot, file)
	if slot == models.SlotPhoto {
		w.photoPreviewID = ""
		if file != nil {
			w.photoPreviewID = uuid.NewString()
		}
	}
	return nil
}

// PhotoPreview returns the staged photo for a preview reference.
func (w *Wizard) PhotoPreview(previewID string) (*models.StagedFile, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.form == nil || w.form.Photo == nil || previewID == "" || previewID != w.photoPreviewID {
		return nil, false
	}
	return w.form.Photo, true
}

// GoBack moves to the previous step and clears errors. It is a no-op on
// the first step.
func (w *Wizard) GoBack() (WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return w.snapshotLocked(), ErrAlreadySubmitted
	}
	if w.submitting {
		return w.snapshotLocked(), ErrSubmissionInFlight
	}
	if w.step > 0 {
		w.step--
		w.errors = map[string]string{}
	}
	return w.snapshotLocked(), nil
}

// Advance validates the current step. With errors it stays put and
// records them in the returned state. Otherwise it moves forward, or on
// the review step runs the submission. A failed submission leaves the
// wizard on the review step with the form intact and returns the error.
func (w *Wizard) Advance(ctx context.Context) (WizardState, error) {
	w.mu.Lock()
	if w.submitted {
		defer w.mu.Unlock()
		return w.snapshotLocked(), ErrAlreadySubmitted
	}
	if w.submitting {
		defer w.mu.Unlock()
		return w.snapshotLocked(), ErrSubmissionInFlight
	}

	if errs := ValidateStep(w.step, w.form); len(errs) > 0 {
		defer w.mu.Unlock()
		w.errors = errs
		w.metrics.IncrementStepRejected(strconv.Itoa(w.step))
		return w.snapshotLocked(), nil
	}
	w.errors = map[string]string{}

	if w.step < StepReview {
		defer w.mu.Unlock()
		w.step++
		return w.snapshotLocked(), nil
	}

	w.submitting = true
	form := w.form.Clone()
	w.mu.Unlock()

	code, err := w.submitter.Submit(ctx, form)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return w.snapshotLocked(), err
	}

	w.submitted = true
	w.referenceCode = code
	w.form = nil
	w.photoPreviewID = ""
	return w.snapshotLocked(), nil
}
