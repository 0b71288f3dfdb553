// Package domain contains the core entities and business rules of the
// Vetician marketplace: accounts, role profiles, the paravet onboarding
// document, bookings, and their invariants. Types here are persistence
// agnostic; storage concerns live in the store packages.
package domain
