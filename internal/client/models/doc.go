// Package models defines the records exchanged with the SkillShare API:
// users, courses with their modules and lessons, enrollments, posts and
// comments, plus the form types used to create or update them.
//
// JSON field names follow the API. Validation helpers report plain errors;
// callers decide which error class they belong to.
package models
