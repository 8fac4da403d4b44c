package services

import (
	"strings"

	"admissions-intake-api/models"
	"admissions-intake-api/utils"
)

// Wizard steps in order. StepReview is the last step; advancing from it
// submits the application.
const (
	StepPersonal = iota
	StepAcademic
	StepProgram
	StepDocuments
	StepReview
)

// StepCount is the number of wizard steps.
const StepCount = StepReview + 1

var stepTitles = [StepCount]string{
	"Personal Information",
	"Academic History",
	"Program Selection",
	"Document Upload",
	"Review & Submit",
}

// StepTitle returns the heading for a step, or "" when out of range.
func StepTitle(step int) string {
	if step < 0 || step >= StepCount {
		return ""
	}
	return stepTitles[step]
}

const (
	msgRequired     = "Required"
	msgInvalidEmail = "Invalid email"
	msgInvalidPhone = "10–11 digits required"
)

// ValidateStep checks the fields owned by step and returns a message per
// failing field. An empty map means the step may be left.
func ValidateStep(step int, form *models.ApplicationForm) map[string]string {
	errs := make(map[string]string)
	if form == nil {
		return errs
	}

	requireText := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs[name] = msgRequired
		}
	}
	requireChoice := func(name, value string) {
		if value == "" {
			errs[name] = msgRequired
		}
	}

	switch step {
	case StepPersonal:
		requireText("firstName", form.FirstName)
		requireText("lastName", form.LastName)
		requireText("fatherName", form.FatherName)
		requireText("cnic", form.CNIC)
		if !utils.ValidateEmail(form.Email) {
			errs["email"] = msgInvalidEmail
		}
		if !utils.ValidatePhone(form.Phone) {
			errs["phone"] = msgInvalidPhone
		}
		requireChoice("dob", form.DOB)
		requireChoice("gender", form.Gender)
		requireChoice("province", form.Province)
	case StepAcademic:
		requireText("institution", form.Institution)
		requireText("degree", form.Degree)
		requireChoice("graduationYear", form.GraduationYear)
		requireChoice("grade", form.Grade)
	case StepProgram:
		requireChoice("department", form.Department)
		requireChoice("intakeYear", form.IntakeYear)
	case StepDocuments:
		if form.Transcript == nil {
			errs[string(models.SlotTranscript)] = msgRequired
		}
	}

	return errs
}
