package http

import "github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"

// LoginRequestBody carries operator credentials.
// swagger:model LoginRequestBody
type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email" example:"a@b.com"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// UserResponse is the signed-in operator.
// swagger:model UserResponse
type UserResponse struct {
	Email     string `json:"email" example:"a@b.com"`
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
}

func UserResponseFromDomain(u *tradeapi.User) UserResponse {
	return UserResponse{Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}
