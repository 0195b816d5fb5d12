package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./atlas.db"

	// DefaultCountriesBaseURL is the public REST Countries API instance
	DefaultCountriesBaseURL = "https://restcountries.com"
)
