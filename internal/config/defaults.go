package config

// Defaults returns the default configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"output":         "text",
		"color":          "auto",
		"show_progress":  true,
		"strict":         false,
		"write_in_place": false,
	}
}
