package models

// ModuleCRM is the license module guarding every route in this service.
const ModuleCRM = "crm"

// AuthContext is the authenticated caller. It is built from the session token
// by the auth middleware and passed explicitly to controllers.
type AuthContext struct {
	TenantID string   `json:"tenantId"`
	UserID   string   `json:"userId"`
	Username string   `json:"username,omitempty"`
	Modules  []string `json:"modules"`
}

// HasModule reports whether the tenant holds a license for module.
func (a AuthContext) HasModule(module string) bool {
	for _, m := range a.Modules {
		if m == module {
			return true
		}
	}
	return false
}
