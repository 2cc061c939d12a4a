//go:build tools

package main

// Dependencias de herramientas: swag genera docs/swagger.json (swag init -g cmd/api/main.go).
import (
	_ "github.com/swaggo/swag"
)
