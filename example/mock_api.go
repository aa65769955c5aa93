package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// StartMockAPI runs a fake FreeNAS REST API with a handful of jails.
// The syncthing jail is created and destroyed every 20-60 seconds so the
// dashboard visibly changes between refreshes.
// Call this in a goroutine before starting the dashboard.
func StartMockAPI(addr, user, password string) {
	var (
		mu           sync.Mutex
		hasSyncthing = true
		nextToggleAt = time.Now().Add(time.Duration(20+rand.Intn(41)) * time.Second)
	)

	authorized := func(r *http.Request) bool {
		u, p, ok := r.BasicAuth()
		return ok && u == user && p == password
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v2.0/jail", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			slog.Warn("rejected unauthenticated request", "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		mu.Lock()
		if time.Now().After(nextToggleAt) {
			hasSyncthing = !hasSyncthing
			nextToggleAt = time.Now().Add(time.Duration(20+rand.Intn(41)) * time.Second)
			slog.Info("jail toggled", "jail", "syncthing", "present", hasSyncthing)
		}
		jails := []map[string]string{
			{"id": "plex", "ip4_addr": "vnet0|192.168.1.50/24"},
			{"id": "transmission", "ip4_addr": "vnet0|192.168.1.51/24"},
			{"id": "jellyfin", "ip4_addr": "vnet0|192.168.1.52/24"},
		}
		if hasSyncthing {
			jails = append(jails, map[string]string{"id": "syncthing", "ip4_addr": "vnet0|192.168.1.53/24"})
		}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(jails); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	mux.HandleFunc("/api/v2.0/plugin", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			slog.Warn("rejected unauthenticated request", "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		// jellyfin has no plugin entry, so it keeps the default icon
		plugins := []map[string]any{
			{
				"name":              "plexmediaserver",
				"admin_portals":     []string{"http://192.168.1.50:32400/web"},
				"plugin_repository": "https://github.com/freenas/iocage-ix-plugins.git",
			},
			{
				"name":              "transmission",
				"admin_portals":     []string{"http://192.168.1.51:9091"},
				"plugin_repository": "https://github.com/freenas/iocage-ix-plugins.git",
			},
			{
				"name":              "syncthing",
				"admin_portals":     []string{"http://192.168.1.53:8384"},
				"plugin_repository": "https://github.com/freenas/iocage-ix-plugins.git",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(plugins); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock API error", "error", err)
	}
}
