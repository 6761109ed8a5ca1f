package auth

import (
	"github.com/dvanek/go-auth-api/internal/validate"
)

// LoginSchema declares the login payload constraints
var LoginSchema = validate.Schema{
	Fields: []validate.Field{
		{Name: "email", Label: "Email", Required: true, Email: true},
		{Name: "password", Label: "Password", Required: true},
	},
}

// RegisterSchema declares the registration payload constraints
var RegisterSchema = validate.Schema{
	Fields: []validate.Field{
		{Name: "name", Label: "Name", Required: true},
		{Name: "email", Label: "Email", Required: true, Email: true},
		{Name: "password", Label: "Password", Required: true, MinLength: 8, StrongPassword: true},
	},
}
