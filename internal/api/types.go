package api

// App is one catalog entry as returned by GET /api/apps.
type App struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Download    string `json:"download,omitempty"`
	Launch      string `json:"launch,omitempty"`
	Command     string `json:"command"`
	Installed   bool   `json:"installed"`
}

// AddAppRequest is the payload for POST /api/apps. Name and Command are
// required; everything else is optional metadata.
type AddAppRequest struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Launch      string `json:"launch,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Download    string `json:"download,omitempty"`
}

// Install statuses reported by the backend.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// InstallResult is the response of the blocking install endpoint and the
// payload of the streaming "done" event. ExitCode is nil when the backend
// did not report one.
type InstallResult struct {
	Status   string `json:"status"`
	Output   string `json:"output,omitempty"`
	ExitCode *int   `json:"exit_code,omitempty"`
}

// CheckResult is one entry of GET /api/check-installations.
type CheckResult struct {
	ID        int    `json:"id"`
	Name      string `json:"name,omitempty"`
	Installed bool   `json:"installed"`
}

// UnknownVersion is the placeholder used when a version lookup fails or the
// backend cannot determine a version.
const UnknownVersion = "unknown"

// VersionInfo is the response of GET /api/version/{id}.
type VersionInfo struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateAvailable bool   `json:"update_available"`
}

// UnknownVersionInfo returns the placeholder version view used when a
// lookup fails. Failures are isolated per item and never propagate.
func UnknownVersionInfo() VersionInfo {
	return VersionInfo{CurrentVersion: UnknownVersion, LatestVersion: UnknownVersion}
}

// OpenResult is the response of POST /api/open/{id}.
type OpenResult struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Output   string `json:"output,omitempty"`
	ExitCode *int   `json:"exit_code,omitempty"`
}
