// Package config loads library configuration from BIOARCH_* environment
// variables and an optional YAML file named by BIOARCH_CONFIG_FILE.
//
// # Environment
//
//	BIOARCH_LOGGING_LEVEL          debug | info | warn | error (default info)
//	BIOARCH_LOGGING_FORMAT         json | text (default json)
//	BIOARCH_EXPORT_FORMAT          csv | xlsx (default xlsx)
//	BIOARCH_EXPORT_SHEET_NAME      workbook sheet name (default individuals)
//	BIOARCH_EXPORT_MISSING_VALUE   text written for absent cells (default empty)
//	BIOARCH_EXPORT_FLOAT_PRECISION digits after the point, -1 for shortest (default -1)
//	BIOARCH_EXPORT_CSV_BOM         write a UTF-8 BOM before CSV output (default false)
//
// # File
//
//	logging:
//	  level: debug
//	export:
//	  format: csv
//	  missing_value: NA
//
// Explicitly set environment variables win over the file.
package config
