package view

// Jail is one row of the dashboard: a jail as the viewer sees it, after
// plugin metadata has been folded in.
type Jail struct {
	// Address is the jail's IP configuration exactly as the API reports
	// it, interface prefix included (e.g. "vnet0|192.168.1.50/24").
	Address string `json:"address"`

	// AdminURL is the plugin's first admin portal, or empty when the jail
	// has no matching plugin or the plugin exposes no portal.
	AdminURL string `json:"admin_url,omitempty"`

	// IconURL is the image shown for the jail. Never empty: jails without
	// a plugin icon use [DefaultIconURL].
	IconURL string `json:"icon_url"`
}
