package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route pattern. An empty list admits any
// authenticated caller and Skip admits anyone.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

// PermissionData is the route table. Skip disables role checks for every route.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// FindPermissions looks up a chi route pattern. Unknown routes yield the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	key := routeKey(method, path)

	if r.index != nil {
		return r.index[key]
	}

	idx := slices.IndexFunc(r.Endpoints, func(p Permission) bool {
		return routeKey(p.Method, p.Path) == key
	})
	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Load decodes a route table and rejects malformed or duplicated entries.
func Load(data []byte) (*PermissionData, error) {
	var table PermissionData
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	table.index = make(map[string]Permission, len(table.Endpoints))

	for _, endpoint := range table.Endpoints {
		if !strings.HasPrefix(endpoint.Path, "/") || endpoint.Method == "" {
			return nil, fmt.Errorf("invalid permission entry %q %q", endpoint.Method, endpoint.Path)
		}

		key := routeKey(endpoint.Method, endpoint.Path)
		if _, exists := table.index[key]; exists {
			return nil, fmt.Errorf("duplicated permission entry %s", key)
		}

		table.index[key] = endpoint
	}

	return &table, nil
}

var (
	embedded     *PermissionData
	embeddedOnce sync.Once
)

// Get returns the embedded route table, decoded once.
func Get() *PermissionData {
	embeddedOnce.Do(func() {
		table, err := Load(permissionsData)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load embedded permissions")
		}

		log.Info().Int("endpoints", len(table.Endpoints)).Msg("Embedded permissions loaded")

		embedded = table
	})

	return embedded
}
