// Package domain defines the core business entities of the task-management
// backend: users, the tasks they own, and the notifications generated when
// a task is completed. Entities validate themselves; persistence and
// transport concerns live elsewhere.
package domain
