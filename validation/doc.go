// Package validation validates configuration structs using struct tags.
//
//	type Config struct {
//	    Bucket string `mapstructure:"bucket" validate:"required,bucketname"`
//	}
//	err := validation.Validate(cfg)
//
// Field names in errors come from the mapstructure tag so they match the keys
// a user writes in config files.
package validation
