package forms

type ResultBatchForm struct {
	Title    string `form:"title" binding:"required,min=1,max=100"`
	ExamType string `form:"exam_type" binding:"omitempty,oneof=Exam Placement Other"`
}
