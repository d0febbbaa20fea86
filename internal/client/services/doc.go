// Package services contains the resource clients of the SkillShare CLI: one
// service per API entity (auth, users, posts, courses, comments and
// enrollments). Services validate identifiers before dispatch, send every
// request through the shared API client and return its typed errors
// unchanged. They never invent data when a request fails.
package services
