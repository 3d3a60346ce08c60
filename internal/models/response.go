package models

import "strconv"

type SearchResult struct {
	Trips       []Trip `json:"trips"`
	TotalCount  int    `json:"total_count"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Code     int    `json:"code"`
	Redirect string `json:"redirect,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// Role is the notification socket role for this user.
func (u User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

func (u User) IDString() string {
	return strconv.FormatInt(u.ID, 10)
}
