package forms

type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type StaffForm struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8,max=100"`
	StaffDepartment  string `json:"staff_department" binding:"required,max=100"`
	StaffDesignation string `json:"staff_designation" binding:"omitempty,max=100"`
}
