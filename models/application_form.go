package models

import "fmt"

// ApplicationForm is the in-progress application held by a wizard. Field
// names in JSON match the names accepted by SetField and used as keys in
// validation errors.
type ApplicationForm struct {
	// Personal
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FatherName string `json:"fatherName"`
	CNIC       string `json:"cnic"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Province   string `json:"province"`
	Address    string `json:"address"`

	// Academic
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Major          string `json:"major"`
	GraduationYear string `json:"graduationYear"`
	Grade          string `json:"grade"`
	GPA            string `json:"gpa"`

	// Program
	Department string `json:"department"`
	IntakeYear string `json:"intakeYear"`
	Shift      string `json:"shift"`

	// Attachments
	Photo      *StagedFile `json:"photo"`
	Transcript *StagedFile `json:"transcript"`
	Domicile   *StagedFile `json:"domicile"`
	MatricCert *StagedFile `json:"matricCert"`
}

// FormFieldNames lists every scalar field SetField accepts.
var FormFieldNames = []string{
	"firstName", "lastName", "fatherName", "cnic", "email", "phone", "dob",
	"gender", "province", "address",
	"institution", "degree", "major", "graduationYear", "grade", "gpa",
	"department", "intakeYear", "shift",
}

func (f *ApplicationForm) fieldRef(name string) *string {
	switch name {
	case "firstName":
		return &f.FirstName
	case "lastName":
		return &f.LastName
	case "fatherName":
		return &f.FatherName
	case "cnic":
		return &f.CNIC
	case "email":
		return &f.Email
	case "phone":
		return &f.Phone
	case "dob":
		return &f.DOB
	case "gender":
		return &f.Gender
	case "province":
		return &f.Province
	case "address":
		return &f.Address
	case "institution":
		return &f.Institution
	case "degree":
		return &f.Degree
	case "major":
		return &f.Major
	case "graduationYear":
		return &f.GraduationYear
	case "grade":
		return &f.Grade
	case "gpa":
		return &f.GPA
	case "department":
		return &f.Department
	case "intakeYear":
		return &f.IntakeYear
	case "shift":
		return &f.Shift
	}
	return nil
}

// IsFormField reports whether name is a scalar field of the form.
func IsFormField(name string) bool {
	var f ApplicationForm
	return f.fieldRef(name) != nil
}

// SetField assigns a scalar field by name.
func (f *ApplicationForm) SetField(name, value string) error {
	ref := f.fieldRef(name)
	if ref == nil {
		return fmt.Errorf("unknown field %q", name)
	}
	*ref = value
	return nil
}

// Field returns the value of a scalar field by name.
func (f *ApplicationForm) Field(name string) (string, bool) {
	ref := f.fieldRef(name)
	if ref == nil {
		return "", false
	}
	return *ref, true
}

// Attachment returns the file staged in a slot, or nil.
func (f *ApplicationForm) Attachment(slot AttachmentSlot) *StagedFile {
	switch slot {
	case SlotPhoto:
		return f.Photo
	case SlotTranscript:
		return f.Transcript
	case SlotDomicile:
		return f.Domicile
	case SlotMatricCert:
		return f.MatricCert
	}
	return nil
}

// SetAttachment replaces the file in a slot. A nil file empties it.
func (f *ApplicationForm) SetAttachment(slot AttachmentSlot, file *StagedFile) {
	switch slot {
	case SlotPhoto:
		f.Photo = file
	case SlotTranscript:
		f.Transcript = file
	case SlotDomicile:
		f.Domicile = file
	case SlotMatricCert:
		f.MatricCert = file
	}
}

// Clone copies the form. Staged files are shared; they are never mutated
// once staged.
func (f *ApplicationForm) Clone() *ApplicationForm {
	cp := *f
	return &cp
}
