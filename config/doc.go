// Package config loads service configuration from a YAML file, a .env file,
// and the process environment using Viper.
//
// Environment variables are bound under every nested key they could mean, so
// FOB_STORAGE fills fob.storage and COS_ENDPOINT_URL fills cos.endpoint_url:
//
//	var cfg MyConfig
//	if err := config.LoadConfig("fobcheck", &cfg); err != nil { ... }
package config
