package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"admissions-intake-api/models"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
)

type fakeUpload struct {
	bucket string
	key    string
	body   []byte
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []fakeUpload
	// failFolder makes uploads into that folder fail with failErr.
	failFolder string
	failErr    error
}

func (s *fakeStorage) Upload(ctx context.Context, bucket, key string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFolder != "" && strings.HasPrefix(key, s.failFolder+"/") {
		return "", s.failErr
	}
	s.uploads = append(s.uploads, fakeUpload{bucket: bucket, key: key, body: data})
	return key, nil
}

func (s *fakeStorage) PublicURL(bucket, storedPath string) string {
	return "https://cdn.test/" + bucket + "/" + storedPath
}

func (s *fakeStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.uploads))
	for _, u := range s.uploads {
		keys = append(keys, u.key)
	}
	return keys
}

type fakeAdmissionStore struct {
	mu       sync.Mutex
	inserts  []models.Admission
	insertFn func(*models.Admission) error
}

func (s *fakeAdmissionStore) InsertAdmission(ctx context.Context, admission *models.Admission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertFn != nil {
		if err := s.insertFn(admission); err != nil {
			return err
		}
	}
	s.inserts = append(s.inserts, *admission)
	return nil
}

func (s *fakeAdmissionStore) ListAdmissions(ctx context.Context) ([]models.Admission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Admission, len(s.inserts))
	copy(out, s.inserts)
	return out, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) SendConfirmation(ctx context.Context, admission *models.Admission) error {
	n.sent = append(n.sent, admission.ApplicationID)
	return n.err
}

var errBackendDown = errors.New("backend unavailable")

func stagedPDF(name string) *models.StagedFile {
	return &models.StagedFile{Name: name, Size: int64(len(pdfBytes)), Data: pdfBytes}
}

func pick(file *models.StagedFile) FilePicker {
	return FilePickerFunc(func() (*models.StagedFile, error) { return file, nil })
}

// fillRequired sets every required scalar field of steps 0-2.
func fillRequired(t testing.TB, w *Wizard) {
	t.Helper()
	fields := map[string]string{
		"firstName":      "Muhammad",
		"lastName":       "Ahmed",
		"fatherName":     "Muhammad Javed",
		"cnic":           "42301-6447178-4",
		"email":          "m.ahmed@example.com",
		"phone":          "0300-1234567",
		"dob":            "2005-04-12",
		"gender":         "Male",
		"province":       "Sindh",
		"institution":    "Govt. College Karachi",
		"degree":         "FSc",
		"graduationYear": "2024",
		"grade":          "A",
		"department":     "Computer Science",
		"intakeYear":     "2026",
	}
	for name, value := range fields {
		if err := w.UpdateField(name, value); err != nil {
			t.Fatalf("UpdateField(%s) returned error: %v", name, err)
		}
	}
}
