package view

import "strings"

// DefaultIconURL is the icon served for jails without a plugin icon. The
// path resolves against the dashboard's own static file handler.
const DefaultIconURL = "/static/icons/beastie.png"

// canonicalName maps a plugin name onto the jail naming scheme. The Plex
// plugin registers as "plexmediaserver" while its jail, repository icon and
// common usage all say "plex".
func canonicalName(name string) string {
	return strings.ReplaceAll(name, "plexmediaserver", "plex")
}

// iconURL derives the icon location for a plugin from its source repository:
// the repository's raw-content URL plus the conventional icons/ directory on
// the master branch.
func iconURL(repository, name string) string {
	base := strings.TrimSuffix(repository, ".git")
	base = strings.ReplaceAll(base, "github.com", "raw.githubusercontent.com")
	return base + "/master/icons/" + name + ".png"
}
