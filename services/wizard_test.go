package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"admissions-intake-api/models"
)

func newTestSubmission(storage *fakeStorage, store *fakeAdmissionStore) *SubmissionService {
	svc := NewSubmissionService(storage, store, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC) }
	return svc
}

// advanceTo moves a filled wizard forward until it reaches step.
func advanceTo(t *testing.T, w *Wizard, step int) {
	t.Helper()
	for w.State().CurrentStep < step {
		state, err := w.Advance(context.Background())
		if err != nil {
			t.Fatalf("Advance returned error: %v", err)
		}
		if len(state.Errors) > 0 {
			t.Fatalf("Advance blocked on step %d: %v", state.CurrentStep, state.Errors)
		}
	}
}

func TestNewWizardStartsEmptyOnFirstStep(t *testing.T) {
	w := NewWizard(nil, nil)
	state := w.State()
	if state.CurrentStep != StepPersonal || state.Submitted || state.Submitting {
		t.Fatalf("unexpected initial state %#v", state)
	}
	if state.Record == nil || state.Record.FirstName != "" {
		t.Fatalf("expected empty record, got %#v", state.Record)
	}
	if state.StepTitle != "Personal Information" {
		t.Fatalf("unexpected step title %q", state.StepTitle)
	}
}

func TestAdvanceBlockedKeepsStepAndStoresErrors(t *testing.T) {
	w := NewWizard(nil, nil)
	_ = w.UpdateField("firstName", "Sara")

	state, err := w.Advance(context.Background())
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	if state.CurrentStep != StepPersonal {
		t.Fatalf("expected to stay on step 0, got %d", state.CurrentStep)
	}
	if _, ok := state.Errors["firstName"]; ok {
		t.Fatalf("filled field must not be reported: %v", state.Errors)
	}
	if _, ok := state.Errors["lastName"]; !ok {
		t.Fatalf("expected lastName error, got %v", state.Errors)
	}

	// Editing a field keeps the other errors in place.
	_ = w.UpdateField("lastName", "Ali")
	if errs := w.State().Errors; errs["lastName"] == "" || errs["email"] == "" {
		t.Fatalf("errors must survive field edits, got %v", errs)
	}
}

func TestUpdateFieldRejectsUnknownName(t *testing.T) {
	w := NewWizard(nil, nil)
	if err := w.UpdateField("favouriteColour", "green"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestGoBackDecrementsAndClearsErrors(t *testing.T) {
	w := NewWizard(nil, nil)
	fillRequired(t, w)
	advanceTo(t, w, StepProgram)

	_ = w.UpdateField("department", "")
	if state, _ := w.Advance(context.Background()); len(state.Errors) == 0 {
		t.Fatalf("expected department error")
	}

	state, err := w.GoBack()
	if err != nil {
		t.Fatalf("GoBack returned error: %v", err)
	}
	if state.CurrentStep != StepAcademic || len(state.Errors) != 0 {
		t.Fatalf("expected step 1 without errors, got %d %v", state.CurrentStep, state.Errors)
	}
	// Data entered on later steps is kept.
	if state.Record.IntakeYear != "2026" {
		t.Fatalf("going back must not clear data, got %#v", state.Record)
	}
}

func TestGoBackIsNoOpOnFirstStep(t *testing.T) {
	w := NewWizard(nil, nil)
	state, err := w.GoBack()
	if err != nil || state.CurrentStep != StepPersonal {
		t.Fatalf("expected no-op at step 0, got %d %v", state.CurrentStep, err)
	}
}

func TestAdvancePastDocumentsRequiresTranscriptOnly(t *testing.T) {
	w := NewWizard(nil, nil)
	fillRequired(t, w)
	advanceTo(t, w, StepDocuments)

	if err := w.SetAttachment(models.SlotDomicile, pick(stagedPDF("domicile.pdf"))); err != nil {
		t.Fatalf("SetAttachment returned error: %v", err)
	}

	state, err := w.Advance(context.Background())
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	if state.CurrentStep != StepDocuments {
		t.Fatalf("expected to stay on documents step, got %d", state.CurrentStep)
	}
	if len(state.Errors) != 1 || state.Errors["transcript"] != "Required" {
		t.Fatalf("expected only a transcript error, got %v", state.Errors)
	}
}

func TestSubmitEndToEndWithTranscriptOnly(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeAdmissionStore{}
	w := NewWizard(newTestSubmission(storage, store), nil)

	fillRequired(t, w)
	advanceTo(t, w, StepDocuments)
	if err := w.SetAttachment(models.SlotTranscript, pick(stagedPDF("marks sheet.pdf"))); err != nil {
		t.Fatalf("SetAttachment returned error: %v", err)
	}
	advanceTo(t, w, StepReview)

	state, err := w.Advance(context.Background())
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	keys := storage.keys()
	if len(keys) != 1 || keys[0] != "transcripts/1792405800000_marks sheet.pdf" {
		t.Fatalf("expected a single transcript upload, got %v", keys)
	}
	if storage.uploads[0].bucket != models.AdmissionsBucket {
		t.Fatalf("unexpected bucket %q", storage.uploads[0].bucket)
	}

	if len(store.inserts) != 1 {
		t.Fatalf("expected exactly one insert, got %d", len(store.inserts))
	}
	row := store.inserts[0]
	if !regexp.MustCompile(`^NN-\d{4}-\d{6}$`).MatchString(row.ApplicationID) {
		t.Fatalf("unexpected reference code %q", row.ApplicationID)
	}
	if !strings.HasPrefix(row.ApplicationID, "NN-2026-") {
		t.Fatalf("reference code must carry the current year, got %q", row.ApplicationID)
	}
	if row.PhotoURL != nil || row.DomicileURL != nil || row.MatricCertURL != nil {
		t.Fatalf("missing attachments must have nil urls, got %#v", row)
	}
	if row.TranscriptURL == nil || *row.TranscriptURL != "https://cdn.test/admissions_docs/transcripts/1792405800000_marks sheet.pdf" {
		t.Fatalf("unexpected transcript url %v", row.TranscriptURL)
	}
	if row.FirstName != "Muhammad" || row.Department != "Computer Science" || row.IntakeYear != "2026" {
		t.Fatalf("row does not carry form fields: %#v", row)
	}

	if !state.Submitted || state.ReferenceCode != row.ApplicationID {
		t.Fatalf("expected submitted state with code %s, got %#v", row.ApplicationID, state)
	}
	if state.Record != nil {
		t.Fatalf("local record must be discarded after submission")
	}
}

func TestSubmitUploadsInSlotOrder(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeAdmissionStore{}
	w := NewWizard(newTestSubmission(storage, store), nil)

	fillRequired(t, w)
	photo := &models.StagedFile{Name: "me.png", Size: int64(len(pngBytes)), Data: pngBytes}
	for slot, file := range map[models.AttachmentSlot]*models.StagedFile{
		models.SlotMatricCert: stagedPDF("matric.pdf"),
		models.SlotPhoto:      photo,
		models.SlotDomicile:   stagedPDF("domicile.pdf"),
		models.SlotTranscript: stagedPDF("transcript.pdf"),
	} {
		if err := w.SetAttachment(slot, pick(file)); err != nil {
			t.Fatalf("SetAttachment(%s) returned error: %v", slot, err)
		}
	}
	advanceTo(t, w, StepReview)

	if _, err := w.Advance(context.Background()); err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	keys := storage.keys()
	wantFolders := []string{"photos/", "transcripts/", "domicile/", "certificates/"}
	if len(keys) != len(wantFolders) {
		t.Fatalf("expected 4 uploads, got %v", keys)
	}
	for i, prefix := range wantFolders {
		if !strings.HasPrefix(keys[i], prefix) {
			t.Fatalf("upload %d: expected folder %s, got %s", i, prefix, keys[i])
		}
	}
	row := store.inserts[0]
	if row.PhotoURL == nil || row.DomicileURL == nil || row.MatricCertURL == nil {
		t.Fatalf("expected every url to be set, got %#v", row)
	}
}

func TestInsertFailureKeepsReviewStepAndRetryReuploads(t *testing.T) {
	storage := &fakeStorage{}
	failures := 1
	store := &fakeAdmissionStore{insertFn: func(*models.Admission) error {
		if failures > 0 {
			failures--
			return errBackendDown
		}
		return nil
	}}
	w := NewWizard(newTestSubmission(storage, store), nil)

	fillRequired(t, w)
	_ = w.SetAttachment(models.SlotTranscript, pick(stagedPDF("transcript.pdf")))
	advanceTo(t, w, StepReview)

	state, err := w.Advance(context.Background())
	if !errors.Is(err, errBackendDown) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if state.Submitted || state.Submitting || state.CurrentStep != StepReview {
		t.Fatalf("expected to remain on review step, got %#v", state)
	}
	if state.Record == nil || state.Record.Transcript == nil {
		t.Fatalf("form must be preserved for retry")
	}
	if len(storage.keys()) != 1 {
		t.Fatalf("expected transcript uploaded once before failure, got %v", storage.keys())
	}

	state, err = w.Advance(context.Background())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !state.Submitted {
		t.Fatalf("expected submitted after retry")
	}
	if len(storage.keys()) != 2 {
		t.Fatalf("retry must upload again, got %v", storage.keys())
	}
	if len(store.inserts) != 1 {
		t.Fatalf("expected one stored row, got %d", len(store.inserts))
	}
}

func TestUploadFailureAbortsBeforeInsert(t *testing.T) {
	storage := &fakeStorage{failFolder: "transcripts", failErr: errors.New("Bucket not found")}
	store := &fakeAdmissionStore{}
	w := NewWizard(newTestSubmission(storage, store), nil)

	fillRequired(t, w)
	_ = w.SetAttachment(models.SlotTranscript, pick(stagedPDF("transcript.pdf")))
	_ = w.SetAttachment(models.SlotDomicile, pick(stagedPDF("domicile.pdf")))
	advanceTo(t, w, StepReview)

	_, err := w.Advance(context.Background())
	if err == nil || err.Error() != "Bucket not found" {
		t.Fatalf("expected raw storage error, got %v", err)
	}
	if len(store.inserts) != 0 {
		t.Fatalf("insert must not run after a failed upload")
	}
	if len(storage.keys()) != 0 {
		t.Fatalf("later uploads must be skipped, got %v", storage.keys())
	}
}

type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) Submit(ctx context.Context, form *models.ApplicationForm) (string, error) {
	close(b.started)
	<-b.release
	return "NN-2026-654321", nil
}

func TestNavigationDisabledWhileSubmitting(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	w := NewWizard(sub, nil)
	fillRequired(t, w)
	_ = w.SetAttachment(models.SlotTranscript, pick(stagedPDF("transcript.pdf")))
	advanceTo(t, w, StepReview)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := w.Advance(context.Background()); err != nil {
			t.Errorf("submission failed: %v", err)
		}
	}()
	<-sub.started

	if !w.State().Submitting {
		t.Fatalf("expected submitting flag while in flight")
	}
	if _, err := w.Advance(context.Background()); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	if _, err := w.GoBack(); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight from GoBack, got %v", err)
	}
	if err := w.UpdateField("firstName", "Changed"); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight from UpdateField, got %v", err)
	}

	close(sub.release)
	wg.Wait()

	state := w.State()
	if !state.Submitted || state.ReferenceCode != "NN-2026-654321" {
		t.Fatalf("unexpected final state %#v", state)
	}
}

func TestSubmittedWizardIsTerminal(t *testing.T) {
	w := NewWizard(newTestSubmission(&fakeStorage{}, &fakeAdmissionStore{}), nil)
	fillRequired(t, w)
	_ = w.SetAttachment(models.SlotTranscript, pick(stagedPDF("transcript.pdf")))
	advanceTo(t, w, StepReview)
	if _, err := w.Advance(context.Background()); err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	if err := w.UpdateField("firstName", "X"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted from UpdateField, got %v", err)
	}
	if _, err := w.GoBack(); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted from GoBack, got %v", err)
	}
	if _, err := w.Advance(context.Background()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted from Advance, got %v", err)
	}
	if err := w.SetAttachment(models.SlotPhoto, pick(nil)); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted from SetAttachment, got %v", err)
	}
}

func TestSetAttachmentPhotoDerivesPreview(t *testing.T) {
	w := NewWizard(nil, nil)
	photo := &models.StagedFile{Name: "me.png", Size: int64(len(pngBytes)), Data: pngBytes}
	if err := w.SetAttachment(models.SlotPhoto, pick(photo)); err != nil {
		t.Fatalf("SetAttachment returned error: %v", err)
	}

	state := w.State()
	if state.PhotoPreviewID == "" {
		t.Fatalf("expected a preview reference")
	}
	got, ok := w.PhotoPreview(state.PhotoPreviewID)
	if !ok || got.ContentType != "image/png" {
		t.Fatalf("expected staged png preview, got %#v %v", got, ok)
	}
	if _, ok := w.PhotoPreview("other"); ok {
		t.Fatalf("unknown preview ids must not resolve")
	}

	// Replacing discards the previous file and preview.
	replacement := &models.StagedFile{Name: "new.png", Size: int64(len(pngBytes)), Data: pngBytes}
	_ = w.SetAttachment(models.SlotPhoto, pick(replacement))
	if _, ok := w.PhotoPreview(state.PhotoPreviewID); ok {
		t.Fatalf("old preview must not resolve after replacement")
	}
	if w.State().Record.Photo.Name != "new.png" {
		t.Fatalf("expected replacement photo")
	}

	_ = w.SetAttachment(models.SlotPhoto, pick(nil))
	if s := w.State(); s.PhotoPreviewID != "" || s.Record.Photo != nil {
		t.Fatalf("clearing the photo must drop the preview, got %#v", s)
	}
}

func TestSetAttachmentRejectsUnknownSlotAndPolicyViolations(t *testing.T) {
	w := NewWizard(nil, nil)
	if err := w.SetAttachment("passport", pick(stagedPDF("x.pdf"))); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}

	err := w.SetAttachment(models.SlotPhoto, pick(stagedPDF("photo.pdf")))
	var attErr *AttachmentError
	if !errors.As(err, &attErr) || attErr.Field != "photo" {
		t.Fatalf("expected photo attachment error, got %v", err)
	}
	if w.State().Record.Photo != nil {
		t.Fatalf("rejected file must not be staged")
	}

	pickErr := errors.New("picker closed")
	if err := w.SetAttachment(models.SlotTranscript, FilePickerFunc(func() (*models.StagedFile, error) {
		return nil, pickErr
	})); !errors.Is(err, pickErr) {
		t.Fatalf("expected picker error, got %v", err)
	}
}
