package models

import "strconv"

var Departments = []string{
	"Computer Science", "Business Administration", "Medicine", "Law",
	"Engineering", "Arts & Humanities", "Natural Sciences", "Education",
	"Architecture", "Economics",
}

var Provinces = []string{
	"Punjab", "Sindh", "Khyber Pakhtunkhwa", "Balochistan",
	"Gilgit-Baltistan", "Azad Kashmir", "Islamabad Capital Territory",
}

var (
	Genders     = []string{"Male", "Female", "Other"}
	Grades      = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "D", "Distinction", "Merit"}
	IntakeYears = []string{"2025", "2026"}
	Shifts      = []string{"Morning", "Evening"}
)

// latestGraduationYear is the newest year offered in the graduation year list.
const latestGraduationYear = 2024

// GraduationYears returns the fifteen selectable years, newest first.
func GraduationYears() []string {
	years := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		years = append(years, strconv.Itoa(latestGraduationYear-i))
	}
	return years
}

// Catalog groups the option lists offered by the intake form.
type Catalog struct {
	Departments     []string `json:"departments"`
	Provinces       []string `json:"provinces"`
	Genders         []string `json:"genders"`
	Grades          []string `json:"grades"`
	GraduationYears []string `json:"graduation_years"`
	IntakeYears     []string `json:"intake_years"`
	Shifts          []string `json:"shifts"`
}

func NewCatalog() Catalog {
	return Catalog{
		Departments:     Departments,
		Provinces:       Provinces,
		Genders:         Genders,
		Grades:          Grades,
		GraduationYears: GraduationYears(),
		IntakeYears:     IntakeYears,
		Shifts:          Shifts,
	}
}
