package config

import "os"

// ServerConfig holds configuration for the built-in demo shop server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads demo shop server configuration from environment variables
func LoadServerConfig() ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	return ServerConfig{
		Port: port,
	}
}

// Addr returns the listen address for the demo shop server
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
