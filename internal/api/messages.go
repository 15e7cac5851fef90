package api

import "time"

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterUserResponse struct {
	ID string `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// User is the authenticated identity as seen by clients.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Record is a fraud candidate entry. ResumeURL is omitted from the JSON
// when the record has no attachment.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	AddedBy     string    `json:"added_by"`
	ResumeURL   *string   `json:"resume_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListRecordsResponse struct {
	Records []*Record `json:"records"`
}

type GetRecordRequest struct {
	ID string `json:"id"`
}

type CreateRecordRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Description string  `json:"description"`
	AddedBy     string  `json:"added_by"`
	ResumeURL   *string `json:"resume_url,omitempty"`
}

// UpdateRecordRequest has no AddedBy: the creator never changes. A nil
// ResumeURL leaves the stored value untouched.
type UpdateRecordRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Description string  `json:"description"`
	ResumeURL   *string `json:"resume_url,omitempty"`
}

type UploadFileRequest struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type UploadFileResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
