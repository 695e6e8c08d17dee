package domain

// EnforceRequest asks whether role may perform action on resource.
type EnforceRequest struct {
	PrincipalID string `json:"principal_id"`
	Role        string `json:"role" binding:"required"`
	Resource    string `json:"resource" binding:"required"`
	Action      string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
