// internal/authclient/flows.go
package authclient

import (
	domain "blxck-client/internal/domain/session"
)

// LoginFlow parameterizes one role's login: which endpoint to call, which
// key of the response body carries the identity, and which role tag the
// resulting session gets. The three role screens share one flow runner
// and differ only in this configuration.
type LoginFlow struct {
	Name        string
	Path        string
	IdentityKey string
	Role        domain.Role
}

var (
	UserLogin = LoginFlow{
		Name:        "user login",
		Path:        "/auth/login/user",
		IdentityKey: "user",
		Role:        domain.RoleTrainee,
	}
	TrainerLogin = LoginFlow{
		Name:        "trainer login",
		Path:        "/auth/login/trainer",
		IdentityKey: "trainer",
		Role:        domain.RoleTrainer,
	}
	AdminLogin = LoginFlow{
		Name:        "admin login",
		Path:        "/auth/login/admin",
		IdentityKey: "admin",
		Role:        domain.RoleAdmin,
	}
)

// LoginFlowForRole maps a role tag to its login flow.
func LoginFlowForRole(role domain.Role) LoginFlow {
	switch role {
	case domain.RoleTrainer:
		return TrainerLogin
	case domain.RoleAdmin:
		return AdminLogin
	default:
		return UserLogin
	}
}

// RegistrationFlow parameterizes one role's sign-up endpoint.
type RegistrationFlow struct {
	Name string
	Path string
	Role domain.Role
}

var (
	TrainerRegistration = RegistrationFlow{
		Name: "trainer registration",
		Path: "/auth/register/trainer",
		Role: domain.RoleTrainer,
	}
	UserRegistration = RegistrationFlow{
		Name: "user registration",
		Path: "/auth/register/user",
		Role: domain.RoleTrainee,
	}
)
