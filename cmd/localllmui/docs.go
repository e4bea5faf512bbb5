package main

// General API documentation for swaggo. Run `swag init -g cmd/localllmui/docs.go -o internal/docs` to regenerate.
//
// @title           localllmui API
// @version         1.0
// @description     Chat page and single-message chat endpoint backed by a local Ollama model.
//
// @contact.name   localllmui maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
