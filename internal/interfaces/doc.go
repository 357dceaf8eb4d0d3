// Package interfaces holds compile-time checks that the database repositories
// satisfy the store interfaces the HTTP controllers consume.
//
// Each controller declares the narrow interface it needs (see
// internal/http/documents.go and friends); the repositories under
// internal/database implement them. Adding a method to a controller interface
// without implementing it on the matching repository breaks this package's
// build rather than a runtime call.
//
//	var _ http.DocumentsStore = (*catalog.Repository)(nil)
package interfaces
