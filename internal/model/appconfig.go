package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultSupportRatio  float64 `json:"default_support_ratio"`
	DefaultLoaderProfile string  `json:"default_loader_profile"`

	// Application preferences
	AutoVerify     bool     `json:"auto_verify"` // Re-check every plan after planning
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultSupportRatio:  defaults.SupportRatio,
		DefaultLoaderProfile: defaults.LoaderProfile,
		AutoVerify:           true,
		RecentProjects:       []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// StowSettings struct. Used when creating a new project so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToSettings(s *StowSettings) {
	s.SupportRatio = c.DefaultSupportRatio
	s.LoaderProfile = c.DefaultLoaderProfile
}

// AddRecentProject prepends a path to the recent projects list, removing
// duplicates and capping the list at ten entries.
func (c *AppConfig) AddRecentProject(path string) {
	updated := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			updated = append(updated, p)
		}
	}
	if len(updated) > 10 {
		updated = updated[:10]
	}
	c.RecentProjects = updated
}
