// Package models holds the reference server's domain types. JSON field
// names match what SkillShare clients send and expect.
package models
