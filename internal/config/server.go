package config

// ServerConfig holds configuration for the local replica shop
type ServerConfig struct {
	Port string
	// PublicURL is the base URL shoppers reach the replica on, used in logs.
	PublicURL   string
	TemplateDir string
	StaticDir   string
}

// LoadServerConfig loads replica server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	publicURL := getenv("SWAG_PUBLIC_URL")
	if publicURL == "" {
		publicURL = "http://localhost:" + port + "/"
	}

	templateDir := getenv("SWAG_TEMPLATE_DIR")
	if templateDir == "" {
		templateDir = "templates"
	}

	staticDir := getenv("SWAG_STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}

	return ServerConfig{
		Port:        port,
		PublicURL:   publicURL,
		TemplateDir: templateDir,
		StaticDir:   staticDir,
	}
}
