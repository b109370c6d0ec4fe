package response

import (
	"popcorn-palace/internal/data/entity"
)

type CustomerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func CustomerToResponse(customer *entity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:       customer.ID.String(),
		FullName: customer.FullName,
		Email:    customer.Email,
	}
}
