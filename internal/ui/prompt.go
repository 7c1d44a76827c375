package ui

import (
	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question, returning defaultVal on prompt errors
// (e.g., no TTY).
func Confirm(title string, defaultVal bool) bool {
	value := defaultVal

	err := huh.NewConfirm().
		Title(title).
		Value(&value).
		Run()
	if err != nil {
		return defaultVal
	}
	return value
}

// Select asks the user to pick one of options. Returns defaultVal on
// prompt errors or when options is empty.
func Select(title string, options []string, defaultVal string) string {
	if len(options) == 0 {
		return defaultVal
	}

	value := defaultVal
	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		opts[i] = huh.NewOption(opt, opt)
	}

	err := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&value).
		Run()
	if err != nil {
		return defaultVal
	}
	return value
}
