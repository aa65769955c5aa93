package truenas

// Jail is one jail entry as returned by the /jail endpoint.
//
// The upstream objects carry many more fields; only the ones the dashboard
// consumes are decoded.
type Jail struct {
	// ID is the jail's name, unique per host.
	ID string `json:"id"`

	// IP4Addr is the raw ip4_addr value as reported by the API, for
	// example "vnet0|10.0.0.5/24". May be empty for jails without a
	// configured address. The value is passed through untouched.
	IP4Addr string `json:"ip4_addr"`
}

// Plugin describes one installed plugin as returned by the /plugin endpoint.
type Plugin struct {
	// Name is the plugin's registered name, e.g. "plexmediaserver".
	Name string `json:"name"`

	// AdminPortals lists the plugin's administration URLs in the order
	// the API reports them. Absent or null in the response decodes to nil.
	AdminPortals []string `json:"admin_portals"`

	// Repository is the plugin's git repository URL, used to derive an
	// icon location.
	Repository string `json:"plugin_repository"`
}
