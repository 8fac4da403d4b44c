package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"admissions-intake-api/metrics"
	"admissions-intake-api/models"
	"admissions-intake-api/utils"
)

// Reference codes are NN-<year>-<6 digits>.
const (
	referencePrefix = "NN"
	referenceMin    = 100000
	referenceSpan   = 900000
)

// GenerateReferenceCode draws a reference code for the given time. intn
// must return a value in [0, n).
func GenerateReferenceCode(now time.Time, intn func(n int) int) string {
	return fmt.Sprintf("%s-%d-%d", referencePrefix, now.Year(), referenceMin+intn(referenceSpan))
}

// ObjectKey builds the storage key for an attachment.
func ObjectKey(slot models.AttachmentSlot, now time.Time, filename string) string {
	return fmt.Sprintf("%s/%d_%s", slot.Folder(), now.UnixMilli(), utils.SanitizeFilename(filename))
}

// SubmissionService uploads staged attachments and inserts the admission.
type SubmissionService struct {
	storage  ObjectStorage
	store    AdmissionStore
	notifier ConfirmationSender
	metrics  *metrics.Metrics
	bucket   string
	now      func() time.Time
	intn     func(n int) int
}

// NewSubmissionService wires the sequence. notifier and m may be nil.
func NewSubmissionService(storage ObjectStorage, store AdmissionStore, notifier ConfirmationSender, m *metrics.Metrics) *SubmissionService {
	return &SubmissionService{
		storage:  storage,
		store:    store,
		notifier: notifier,
		metrics:  m,
		bucket:   models.AdmissionsBucket,
		now:      time.Now,
		intn:     rand.Intn,
	}
}

type uploadTask struct {
	slot models.AttachmentSlot
	file *models.StagedFile
}

// Submit runs the sequence once: draw a reference code, upload each staged
// attachment in slot order, then insert one row. The first failure aborts
// and is returned as is; nothing already uploaded is removed.
func (s *SubmissionService) Submit(ctx context.Context, form *models.ApplicationForm) (code string, err error) {
	// The sequence is not cancellable once started.
	ctx = persistentContext(ctx)
	start := time.Now()
	defer func() { s.metrics.ObserveSubmission(start, err) }()

	code = GenerateReferenceCode(s.now(), s.intn)
	admission := models.NewAdmissionFromForm(code, form)

	tasks := make([]uploadTask, 0, len(models.AttachmentSlots))
	for _, slot := range models.AttachmentSlots {
		tasks = append(tasks, uploadTask{slot: slot, file: form.Attachment(slot)})
	}

	for _, task := range tasks {
		if task.file == nil {
			admission.SetAttachmentURL(task.slot, nil)
			continue
		}
		publicURL, err := s.upload(ctx, task)
		if err != nil {
			log.Printf("submission %s: upload %s failed: %v", code, task.slot, err)
			return "", err
		}
		admission.SetAttachmentURL(task.slot, &publicURL)
	}

	if err := s.store.InsertAdmission(ctx, &admission); err != nil {
		log.Printf("submission %s: insert failed: %v", code, err)
		return "", err
	}

	log.Printf("submission %s: stored admission for %s (%s)", code, admission.FullName(), admission.Department)

	if s.notifier != nil {
		if err := s.notifier.SendConfirmation(ctx, &admission); err != nil {
			log.Printf("submission %s: confirmation mail failed: %v", code, err)
		}
	}

	return code, nil
}

func (s *SubmissionService) upload(ctx context.Context, task uploadTask) (url string, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveUpload(string(task.slot), start, err) }()

	key := ObjectKey(task.slot, s.now(), task.file.Name)
	stored, err := s.storage.Upload(ctx, s.bucket, key, bytes.NewReader(task.file.Data))
	if err != nil {
		return "", err
	}
	return s.storage.PublicURL(s.bucket, stored), nil
}

func persistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
