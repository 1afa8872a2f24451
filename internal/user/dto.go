package user

type UserResponse struct {
	ID           uint64  `json:"id"`
	FirstName    string  `json:"first_name"`
	MiddleName   *string `json:"middle_name"`
	LastName     string  `json:"last_name"`
	UserName     string  `json:"user_name"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number"`
	ProfilePhoto *string `json:"profile_photo"`
	UserType     string  `json:"user_type"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type CreateUserRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	MiddleName   *string `json:"middle_name"`
	LastName     string  `json:"last_name" binding:"required"`
	UserName     string  `json:"user_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	PhoneNumber  string  `json:"phone_number" binding:"required"`
	ProfilePhoto *string `json:"profile_photo"`
	UserType     string  `json:"user_type" binding:"omitempty,oneof=user admin"`
}

// PUT /users/:id。指定フィールドのみ更新。password は再ハッシュされる。
type UpdateUserRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,min=1"`
	MiddleName   *string `json:"middle_name"`
	LastName     *string `json:"last_name" binding:"omitempty,min=1"`
	UserName     *string `json:"user_name" binding:"omitempty,min=1"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
	PhoneNumber  *string `json:"phone_number" binding:"omitempty,min=1"`
	ProfilePhoto *string `json:"profile_photo"`
	UserType     *string `json:"user_type" binding:"omitempty,oneof=user admin"`
}

type BulkUpdateRequest struct {
	IDs  []uint64          `json:"ids" binding:"required,min=1"`
	Data UpdateUserRequest `json:"data"`
}
