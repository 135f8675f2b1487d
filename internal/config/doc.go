// Package config manages geoready configuration.
//
// Configuration flows from three sources, in increasing precedence:
// built-in defaults, the optional .geoready YAML file, and CLI flags.
// The resulting Config struct is passed by dependency injection; there
// is no package-level mutable configuration state.
//
// The YAML file is mainly useful for credentials that should not appear
// in shell history (scraping API key, SMTP password):
//
//	provider: scrapingapi
//	api_key: "..."
//	smtp:
//	  host: smtp.example.com
//	  port: 587
//	  username: reports@example.com
//	  password: "..."
//	  from: reports@example.com
package config
