package handlers

import "github.com/go-playground/validator/v10"

// Shared validator for request DTOs; validator instances cache struct
// metadata so a single one serves all handlers.
var validate = validator.New()
