package models

import (
	"strings"
	"time"
)

// DefaultAdmissionStatus is assigned by the database when a row is inserted.
const DefaultAdmissionStatus = "Pending"

// Admission represents the admissions table
type Admission struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID  string    `gorm:"column:application_id;size:32;uniqueIndex" json:"application_id"`
	FirstName      string    `gorm:"column:first_name" json:"first_name"`
	LastName       string    `gorm:"column:last_name" json:"last_name"`
	FatherName     string    `gorm:"column:father_name" json:"father_name"`
	CNIC           string    `gorm:"column:cnic" json:"cnic"`
	Email          string    `gorm:"column:email" json:"email"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	DOB            string    `gorm:"column:dob" json:"dob"`
	Gender         string    `gorm:"column:gender" json:"gender"`
	Province       string    `gorm:"column:province" json:"province"`
	Address        string    `gorm:"column:address" json:"address"`
	Institution    string    `gorm:"column:institution" json:"institution"`
	Degree         string    `gorm:"column:degree" json:"degree"`
	Major          string    `gorm:"column:major" json:"major"`
	GraduationYear string    `gorm:"column:graduation_year" json:"graduation_year"`
	Grade          string    `gorm:"column:grade" json:"grade"`
	GPA            string    `gorm:"column:gpa" json:"gpa"`
	Department     string    `gorm:"column:department" json:"department"`
	IntakeYear     string    `gorm:"column:intake_year" json:"intake_year"`
	Shift          string    `gorm:"column:shift" json:"shift"`
	PhotoURL       *string   `gorm:"column:photo_url" json:"photo_url"`
	TranscriptURL  *string   `gorm:"column:transcript_url" json:"transcript_url"`
	DomicileURL    *string   `gorm:"column:domicile_url" json:"domicile_url"`
	MatricCertURL  *string   `gorm:"column:matric_cert_url" json:"matric_cert_url"`
	Status         string    `gorm:"column:status;size:32;default:Pending" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides
func (Admission) TableName() string {
	return "admissions"
}

// FullName joins first and last name the way the listing shows them.
func (a Admission) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// SetAttachmentURL stores the public URL produced for an attachment slot.
func (a *Admission) SetAttachmentURL(slot AttachmentSlot, url *string) {
	switch slot {
	case SlotPhoto:
		a.PhotoURL = url
	case SlotTranscript:
		a.TranscriptURL = url
	case SlotDomicile:
		a.DomicileURL = url
	case SlotMatricCert:
		a.MatricCertURL = url
	}
}

// NewAdmissionFromForm flattens an in-progress form into a row. Attachment
// URLs are filled in by the caller once uploads complete.
func NewAdmissionFromForm(applicationID string, form *ApplicationForm) Admission {
	return Admission{
		ApplicationID:  applicationID,
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		FatherName:     form.FatherName,
		CNIC:           form.CNIC,
		Email:          form.Email,
		Phone:          form.Phone,
		DOB:            form.DOB,
		Gender:         form.Gender,
		Province:       form.Province,
		Address:        form.Address,
		Institution:    form.Institution,
		Degree:         form.Degree,
		Major:          form.Major,
		GraduationYear: form.GraduationYear,
		Grade:          form.Grade,
		GPA:            form.GPA,
		Department:     form.Department,
		IntakeYear:     form.IntakeYear,
		Shift:          form.Shift,
	}
}
