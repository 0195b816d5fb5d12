package http

// This file provides a consolidated view of the service interfaces the HTTP
// controllers depend on. Each controller defines its own interface
// (Interface Segregation Principle) in its respective file.
//
// CountryLookup (countries.go):
//   - Single country profile lookups against the upstream API
//
// CountryComparer (countries.go):
//   - Two-country population comparisons
//
// FavouritesService (favourites.go):
//   - Save with upstream lookup, notes and optional image upload
//   - Paginated favourite lists and single-record reads
//   - Notes/image updates and deletes
//
// These interfaces follow the Interface Segregation Principle:
// each controller only depends on the methods it actually uses.
// Compile-time implementation checks live in internal/interfaces.
