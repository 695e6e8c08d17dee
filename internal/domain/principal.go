package domain

// PrincipalKind distinguishes the two kinds of authenticated caller.
type PrincipalKind string

const (
	PrincipalEmployee PrincipalKind = "employee"
	PrincipalAdmin    PrincipalKind = "admin"
)

func (k PrincipalKind) Valid() bool {
	return k == PrincipalEmployee || k == PrincipalAdmin
}

// Principal is the authenticated caller. EmployeeID is only set for employees;
// for admins ID is the admin username.
type Principal struct {
	Kind       PrincipalKind `json:"kind"`
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id,omitempty"`
	Name       string        `json:"name"`
}

func (p Principal) IsEmployee() bool { return p.Kind == PrincipalEmployee }
func (p Principal) IsAdmin() bool    { return p.Kind == PrincipalAdmin }
