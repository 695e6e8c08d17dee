package rbac

import "time"

type RolePermission struct {
	ID        uint   `gorm:"primaryKey"`
	Role      string `gorm:"type:varchar(50);not null;uniqueIndex:ux_role_permission"`
	Resource  string `gorm:"type:varchar(50);not null;uniqueIndex:ux_role_permission"`
	Action    string `gorm:"type:varchar(50);not null;uniqueIndex:ux_role_permission"`
	CreatedAt time.Time
}

// DefaultPermissions is seeded on startup. Rows added later in the table are
// kept.
var DefaultPermissions = []RolePermission{
	{Role: "employee", Resource: "attendance", Action: "create"},
	{Role: "employee", Resource: "attendance", Action: "read_own"},
	{Role: "employee", Resource: "timesheet", Action: "create"},
	{Role: "employee", Resource: "timesheet", Action: "read_own"},
	{Role: "employee", Resource: "wfh", Action: "read_own"},

	{Role: "admin", Resource: "attendance", Action: "read_all"},
	{Role: "admin", Resource: "attendance", Action: "export"},
	{Role: "admin", Resource: "timesheet", Action: "read_all"},
	{Role: "admin", Resource: "timesheet", Action: "export"},
	{Role: "admin", Resource: "wfh", Action: "*"},
	{Role: "admin", Resource: "employee", Action: "*"},
	{Role: "admin", Resource: "dashboard", Action: "read"},
	{Role: "admin", Resource: "rbac", Action: "read"},
}
