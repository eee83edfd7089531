package domain

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// RequestContext carries the authenticated caller, extracted from the
// identity service's token by the auth middleware and passed explicitly.
// Nothing below the handler layer reads ambient session state.
type RequestContext struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// IsStaff reports whether the caller may manage vehicles, bookings and users.
func (rc RequestContext) IsStaff() bool {
	return rc.Role == "staff" || rc.Role == "admin"
}
