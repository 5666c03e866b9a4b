// Package main provides the seoaudit CLI.
//
// Usage:
//
//	seoaudit serve [--config file]
//	seoaudit analyze <url> [--format json|markdown]
package main

func main() {
	Execute()
}
