package dto

type LoginRequest struct {
	UserID string `json:"user_id"`
}

type CreateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type PasswordRequest struct {
	Category string `json:"category"`
	Password string `json:"password"`
}
