// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No authentication
	SecurityAccess                        // Any valid access token
	SecurityCustomer                      // Access token of a customer
	SecurityAdmin                         // Access token of an admin
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.register": SecurityPublic,
	"auth.login":    SecurityPublic,

	// Profile
	"me.get": SecurityAccess,

	// Inventory
	"vehicles.list":     SecurityAccess,
	"vehicles.add":      SecurityAdmin,
	"vehicles.remove":   SecurityAdmin,
	"vehicles.reserved": SecurityAdmin,

	// Rentals
	"rentals.rent":    SecurityCustomer,
	"rentals.return":  SecurityCustomer,
	"rentals.current": SecurityCustomer,
	"rentals.history": SecurityCustomer,
	"rentals.active":  SecurityAdmin,

	// Account
	"account.funds": SecurityCustomer,

	// Admin dashboard
	"admin.report":    SecurityAdmin,
	"admin.customers": SecurityAdmin,
}

// GetSecurityLevel returns the security level for a route name.
// Unknown routes require an access token.
func GetSecurityLevel(route string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[route]; ok {
		return level
	}
	return SecurityAccess
}
