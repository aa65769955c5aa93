// Standalone mock FreeNAS API for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockapi
//
// Then in another terminal:
//
//	go run ./cmd/nastie serve -c example/config.yaml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

func main() {
	fmt.Println("Mock FreeNAS API starting on :9999")
	fmt.Println("Credentials: root / demo")
	fmt.Println("The syncthing jail comes and goes every 20-60 seconds")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var (
		mu           sync.Mutex
		hasSyncthing = true
		nextToggleAt = time.Now().Add(time.Duration(20+rand.Intn(41)) * time.Second)
	)

	authorized := func(r *http.Request) bool {
		u, p, ok := r.BasicAuth()
		return ok && u == "root" && p == "demo"
	}

	http.HandleFunc("/api/v2.0/jail", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			slog.Warn("rejected unauthenticated request", "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

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
		_ = json.NewEncoder(w).Encode(jails)
	})

	http.HandleFunc("/api/v2.0/plugin", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			slog.Warn("rejected unauthenticated request", "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

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
		_ = json.NewEncoder(w).Encode(plugins)
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
