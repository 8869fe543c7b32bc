package booking

// Permissions is the capability set resolved once per request from the
// caller's role. The booking state machine itself is role-agnostic; handlers
// resolve a Permissions value and pass it down, so the service never
// consults roles directly.
type Permissions struct {
	CanViewBookings  bool
	CanCreateBooking bool
	CanEditBooking   bool
	CanChangeStatus  bool
	CanCancelBooking bool
	CanDeleteBooking bool
}

// Role names carried in the JWT.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleCoordinator = "coordinator"
	RoleReadOnly    = "readonly"
)

// PermissionsForRole maps a role to its capability set. Unknown roles get
// an empty set, which denies every operation.
func PermissionsForRole(role string) Permissions {
	switch role {
	case RoleAdmin, RoleManager:
		return Permissions{
			CanViewBookings:  true,
			CanCreateBooking: true,
			CanEditBooking:   true,
			CanChangeStatus:  true,
			CanCancelBooking: true,
			CanDeleteBooking: true,
		}
	case RoleCoordinator:
		return Permissions{
			CanViewBookings:  true,
			CanCreateBooking: true,
			CanEditBooking:   true,
			CanChangeStatus:  true,
			CanCancelBooking: true,
		}
	case RoleReadOnly:
		return Permissions{CanViewBookings: true}
	default:
		return Permissions{}
	}
}
