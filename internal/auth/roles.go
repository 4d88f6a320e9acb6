package auth

const (
	RoleAdmin        = "admin"
	RoleManager      = "gestor"
	RoleCollaborator = "colaborador"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleCollaborator:
		return true
	}
	return false
}
