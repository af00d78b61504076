package auth

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCompany Role = "COMPANY"
	RoleDriver  Role = "DRIVER"
)

// CurrentUser = info singkat pihak yang lagi login (admin / company / driver)
type CurrentUser struct {
	ID   string // uuid dari tabel admins / companies / drivers
	Role Role
	Name string
}

const ContextUserKey = "currentUser"

func (cu CurrentUser) IsAdmin() bool   { return cu.Role == RoleAdmin }
func (cu CurrentUser) IsCompany() bool { return cu.Role == RoleCompany }
func (cu CurrentUser) IsDriver() bool  { return cu.Role == RoleDriver }
