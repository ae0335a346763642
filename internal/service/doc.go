// Package service implements the application's business operations on top
// of the store interfaces: task CRUD with ownership rules, the
// task-completion reaction (notification insert + email dispatch), and
// user management.
package service
