package service

import (
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/saheminvest/saheminvest-backend/internal/database"
	"github.com/saheminvest/saheminvest-backend/internal/version"
)

// SystemService reports process health and version information.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database
// handle.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// VersionInfo is the version endpoint payload.
type VersionInfo struct {
	AppVersion string `json:"appVersion"`
	DBVersion  int64  `json:"dbVersion"`
}

// CheckHealth pings the database and reports overall health.
func (s *SystemService) CheckHealth() *HealthStatus {
	if err := database.HealthCheck(s.db); err != nil {
		return &HealthStatus{Status: "degraded", Database: "unreachable"}
	}
	return &HealthStatus{Status: "ok", Database: "ok"}
}

// GetVersion reports the application version and the applied migration
// version.
func (s *SystemService) GetVersion() (*VersionInfo, error) {
	dbVersion, err := goose.GetDBVersion(s.db)
	if err != nil {
		return nil, err
	}

	return &VersionInfo{
		AppVersion: version.Version,
		DBVersion:  dbVersion,
	}, nil
}
