// Package engine implements the protocol state machine of the library
// server. One Handle call consumes one line from one connection, advances
// that connection's session and returns the response text.
//
// The dialogue is a guided, stateful conversation: unauthenticated sessions
// walk the login or registration field chains; authenticated sessions pick
// numeric menu commands, with transient waiting states collecting the
// arguments of multi-step commands before returning to the menu. Unknown
// input never errors - it re-displays the menu - and no input line can leave
// a session in an undefined state.
//
// Business rules that span collections live here, not in the stores: the
// borrow and return workflows, user status and role transition rules, the
// two-phase hard delete and the password policy gate. Workflow steps are
// separate store calls without a surrounding transaction, so concurrent
// workflows on the same record can interleave; see the borrow handler.
package engine
