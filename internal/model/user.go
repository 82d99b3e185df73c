package model

type User struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Balance   float64 `json:"balance"`
	CreatedAt APITime `json:"created_at"`
	IsActive  bool    `json:"is_active"`
}

type LoginResponse struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
	Message  string  `json:"message,omitempty"`
}

func (r LoginResponse) ToUser() User {
	return User{
		ID:       r.ID,
		Username: r.Username,
		Email:    r.Email,
		Balance:  r.Balance,
		IsActive: true,
	}
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
