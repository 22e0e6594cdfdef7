// Package models defines the core domain models for Friends Meet.
//
// # Models
//
//   - Group: a circle of friends trying to find a time and place to meet
//   - Member: one participant of a group (registered user or just a name)
//   - Preference: the dates, times and locations one member can make
//   - Suggestion: a ranked (date, time, location) candidate computed from preferences
//   - User: a registered account that can create and manage groups
//
// # Design Principles
//
// 1. **IDs over pointers**: relationships are expressed with ID strings
// 2. **Unix timestamps**: CreatedAt/UpdatedAt fields are seconds since the epoch
// 3. **Sets as lists**: preference lists are sets, but keep first-seen order for display
package models
