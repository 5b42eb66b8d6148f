package forms

type PlacementForm struct {
	Company      string  `json:"company" binding:"required,min=1,max=100"`
	Logo         string  `json:"logo" binding:"omitempty"`
	Position     string  `json:"position" binding:"required,min=1,max=100"`
	Package      float64 `json:"package" binding:"omitempty,min=0"`
	PackageRange string  `json:"package_range" binding:"omitempty"`
	Location     string  `json:"location" binding:"omitempty,max=100"`
	Type         string  `json:"type" binding:"omitempty,oneof=Full-time Internship Contract"`
	Department   string  `json:"department" binding:"omitempty"`
	DriveDate    string  `json:"drive_date" binding:"omitempty"`
	Status       string  `json:"status" binding:"omitempty,oneof=Upcoming Ongoing Completed"`
	Description  string  `json:"description" binding:"omitempty,max=2000"`
	Eligibility  string  `json:"eligibility" binding:"omitempty,max=500"`
}

type SelectStudentsForm struct {
	Students []string `json:"students" binding:"required,min=1"`
}
