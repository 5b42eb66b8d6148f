package forms

type CareerStepForm struct {
	Step           int    `json:"step" binding:"required,min=1,max=5"`
	StepTitle      string `json:"step_title" binding:"required,min=1,max=100"`
	RequestMessage string `json:"request_message" binding:"omitempty,max=1000"`
}

type CareerDecisionForm struct {
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment" binding:"omitempty,max=500"`
}
