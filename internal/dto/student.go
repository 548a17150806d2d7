package dto

// CreateStudentRequest carries the fields for a new student record.
type CreateStudentRequest struct {
	Name           string `json:"name" binding:"required"`
	RegisterNumber string `json:"registerNumber" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Department     string `json:"department" binding:"required"`
	Year           int    `json:"year" binding:"required,gte=1,lte=6"`
}

// UpdateStudentRequest uses pointers so absent fields keep their
// stored values.
type UpdateStudentRequest struct {
	Name           *string `json:"name"`
	RegisterNumber *string `json:"registerNumber"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	Department     *string `json:"department"`
	Year           *int    `json:"year" binding:"omitempty,gte=1,lte=6"`
}

// StudentListFilter narrows the student listing. Search matches name,
// register number and email case-insensitively.
type StudentListFilter struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	Year       int    `form:"year"`
}
