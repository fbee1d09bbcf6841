package usecase

// Actor identifies who performed an operation. Every orchestrator call takes
// an explicit actor instead of reading an ambient current-user; the deadline
// sweeper is the only caller that uses SystemActor.
type Actor struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role,omitempty"`
}

func SystemActor() Actor {
	return Actor{UserID: "system", UserName: "System"}
}

func (a Actor) orSystem() Actor {
	if a.UserID == "" && a.UserName == "" {
		return SystemActor()
	}
	return a
}
