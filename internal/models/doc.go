// Package models defines the persisted and exchanged domain records of the
// burger builder.
//
// # Records
//
//   - Combo: a reusable {bun, toppings} selection. Used for both the
//     favorite slot (device lifetime) and the last-order slot (tab session).
//   - CompletedOrder: an immutable checkout snapshot appended to the session
//     history.
//   - Feedback: a human-readable validation message for one UI field.
//
// # Design Principles
//
// 1. **Ids, not pointers**: records reference catalog entries by id so they
// survive catalog lookups failing later.
// 2. **Snapshots**: CompletedOrder captures the bun name at checkout time;
// it is never re-resolved.
// 3. **Soft errors**: validation problems are Feedback values, not errors.
package models
