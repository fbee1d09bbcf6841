package request

import "poolops/internal/usecase"

// ActorRequest identifies who is performing the operation. Sent by the
// frontend alongside every mutating call.
type ActorRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

func (a ActorRequest) ToActor() usecase.Actor {
	return usecase.Actor{UserID: a.UserID, UserName: a.UserName, Role: a.Role}
}
