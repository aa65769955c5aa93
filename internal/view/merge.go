package view

import "github.com/garfunkel/nastie/internal/truenas"

// Merge folds the two API collections into the map the dashboard serves.
//
// Every jail seeds a record keyed by its identifier; duplicate identifiers
// keep the last occurrence. Plugins that expose at least one admin portal
// are matched against the jails by canonical name and contribute the portal
// link and repository icon. Plugins without a portal, or without a matching
// jail, are ignored. Every returned record has a non-empty icon.
func Merge(jails []truenas.Jail, plugins []truenas.Plugin) map[string]Jail {
	merged := make(map[string]Jail, len(jails))

	for _, jail := range jails {
		merged[jail.ID] = Jail{Address: jail.IP4Addr}
	}

	for _, plugin := range plugins {
		if len(plugin.AdminPortals) == 0 {
			continue
		}

		name := canonicalName(plugin.Name)
		record, ok := merged[name]
		if !ok {
			continue
		}

		record.AdminURL = plugin.AdminPortals[0]
		record.IconURL = iconURL(plugin.Repository, name)
		merged[name] = record
	}

	for id, record := range merged {
		if record.IconURL == "" {
			record.IconURL = DefaultIconURL
			merged[id] = record
		}
	}

	return merged
}
