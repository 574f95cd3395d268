package recruitment

type CreateCandidateRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Stage    string `json:"stage" binding:"omitempty,oneof=applied screening interview offer hired rejected"`
	Notes    string `json:"notes"`
}

type UpdateCandidateRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Stage    string `json:"stage" binding:"required,oneof=applied screening interview offer hired rejected"`
	Notes    string `json:"notes"`
}

type CandidateResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Stage     string `json:"stage"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}
