package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the admissions intake.
// Tracks wizard progress, submission outcomes and upload durations.
type Metrics struct {
	WizardsStarted     prometheus.Counter
	StepRejections     *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
	Uploads            *prometheus.CounterVec
	UploadDuration     prometheus.Histogram
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WizardsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "admissions_wizards_started_total",
			Help: "Total number of intake wizards started",
		}),
		StepRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_step_rejections_total",
			Help: "Advance attempts blocked by validation, by step",
		}, []string{"step"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_submissions_total",
			Help: "Submission attempts by outcome",
		}, []string{"outcome"}),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "admissions_submission_duration_seconds",
			Help:    "Duration of the full submission sequence (uploads plus insert)",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admissions_uploads_total",
			Help: "Attachment uploads by slot and outcome",
		}, []string{"slot", "outcome"}),
		UploadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "admissions_upload_duration_seconds",
			Help:    "Duration of single attachment uploads",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementWizardsStarted() {
	if m == nil {
		return
	}
	m.WizardsStarted.Inc()
}

func (m *Metrics) IncrementStepRejected(step string) {
	if m == nil {
		return
	}
	m.StepRejections.WithLabelValues(step).Inc()
}

// ObserveSubmission records the outcome and duration of a submission.
// Call with time.Now() taken at the start of the sequence.
func (m *Metrics) ObserveSubmission(start time.Time, err error) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome(err)).Inc()
	m.SubmissionDuration.Observe(time.Since(start).Seconds())
}

// ObserveUpload records one attachment upload.
func (m *Metrics) ObserveUpload(slot string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(slot, outcome(err)).Inc()
	m.UploadDuration.Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
