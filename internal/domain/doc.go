// Package domain holds the core entities of the system (users, diagnoses,
// recommendations, chat sessions and messages) along with their constructors
// and validation rules. It has no dependencies on transport or storage.
package domain
