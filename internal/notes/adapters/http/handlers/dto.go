package handlers

// ProjectRequest - тело POST и PUT /api/Project.
type ProjectRequest struct {
	Name string `json:"name"`
}

// NoteRequest - тело POST и PUT /api/Note.
type NoteRequest struct {
	NoteText     string `json:"noteText"`
	AttributeIDs []int  `json:"attributeIds"`
}

// AttributeRequest - тело POST и PUT /api/Attribute.
type AttributeRequest struct {
	AttributeName string `json:"attributeName"`
}

// CredentialsRequest - тело register и login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserUpdateRequest - тело PUT /api/User/{id}. Пустой password не меняет пароль.
type UserUpdateRequest struct {
	UserID   *int   `json:"userId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse - ответ login.
type TokenResponse struct {
	Token string `json:"token"`
}

// HealthResponse - ответ /health.
type HealthResponse struct {
	Status string `json:"status"`
}
