package engine

import (
	"fmt"
	"strconv"
	"strings"

	"shelfd/lib/library"
)

// --------------------------------------------------------------------------
// User Management (admin)
// --------------------------------------------------------------------------

// finishUserCommand completes the user-management command awaiting a user id.
// LastCommand tells which one.
func (e *Engine) finishUserCommand(sess *Session, line string) string {
	id, err := strconv.Atoi(line)
	if err != nil {
		return e.done(sess, "Invalid user id.")
	}

	switch sess.LastCommand {
	case 11:
		return e.done(sess, e.setUserStatus(sess, id, library.UserActive))
	case 12:
		return e.done(sess, e.setUserStatus(sess, id, library.UserInactive))
	case 13:
		return e.done(sess, e.setUserStatus(sess, id, library.UserDeleted))
	case 14:
		return e.done(sess, e.changeUserRole(sess, id, library.RoleAdmin))
	case 15:
		return e.done(sess, e.changeUserRole(sess, id, library.RoleRegular))
	case 16:
		return e.done(sess, e.viewUserTransactions(id))
	case 18:
		return e.finishHardDelete(sess, id)
	default:
		return e.done(sess, "Invalid user id.")
	}
}

// setUserStatus applies a status transition. Deleted accounts are immutable;
// re-applying the current status is reported, not performed. An inactive
// account can always be (soft-)deleted - that transition goes through the
// normal path because it never equals the current status.
func (e *Engine) setUserStatus(sess *Session, id int, status library.UserStatus) string {
	target, err := e.users.GetByID(id)
	if err != nil {
		Logger.Errorf("status change lookup failed: %v", err)
		return msgStoreFailure
	}
	if target.ID == 0 {
		return "User not found."
	}
	if target.Status == library.UserDeleted {
		return "Deleted users cannot be modified."
	}
	if target.Status == status {
		return fmt.Sprintf("User is already %s.", status)
	}

	if err := e.users.UpdateStatus(id, status, sess.User.Email); err != nil {
		Logger.Errorf("status change failed: %v", err)
		return msgStoreFailure
	}
	return fmt.Sprintf("User %d is now %s.", id, status)
}

// changeUserRole toggles an account between admin and regular user. Other
// roles are never assigned this way, admins cannot retype themselves, and
// deleted or inactive accounts are off limits.
func (e *Engine) changeUserRole(sess *Session, id int, role library.UserRole) string {
	target, err := e.users.GetByID(id)
	if err != nil {
		Logger.Errorf("role change lookup failed: %v", err)
		return msgStoreFailure
	}
	if target.ID == 0 {
		return "User not found."
	}
	if target.ID == sess.User.ID {
		return "You cannot change your own role."
	}
	if target.Status == library.UserDeleted || target.Status == library.UserInactive {
		return "Deleted or inactive accounts cannot be retyped."
	}
	if target.Role != library.RoleAdmin && target.Role != library.RoleRegular {
		return "Only admin and regular user accounts can be retyped."
	}
	if target.Role == role {
		return "User already has this role."
	}

	target.Role = role
	target.UpdatedBy = sess.User.Email
	if err := e.users.Update(target); err != nil {
		Logger.Errorf("role change failed: %v", err)
		return msgStoreFailure
	}
	return "User role updated successfully!"
}

// finishHardDelete implements the two-phase confirmation: the first id entry
// warns and re-prompts, only a second identical entry performs the removal.
// A different id restarts the confirmation for that id.
func (e *Engine) finishHardDelete(sess *Session, id int) string {
	if id == sess.User.ID {
		return e.done(sess, "You cannot delete your own account.")
	}

	if sess.PendingDeleteID != id {
		target, err := e.users.GetByID(id)
		if err != nil {
			Logger.Errorf("hard delete lookup failed: %v", err)
			return e.done(sess, msgStoreFailure)
		}
		if target.ID == 0 {
			return e.done(sess, "User not found.")
		}

		// Stay in the waiting state for the confirming entry.
		sess.PendingDeleteID = id
		return fmt.Sprintf("WARNING: this will permanently delete user %d. Enter the same ID again to confirm: ", id)
	}

	sess.PendingDeleteID = 0
	if err := e.users.HardDelete(id); err != nil {
		Logger.Errorf("hard delete failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}
	return e.done(sess, fmt.Sprintf("User %d permanently deleted.", id))
}

// viewUserTransactions lists all transactions of one account.
func (e *Engine) viewUserTransactions(id int) string {
	user, err := e.users.GetByID(id)
	if err != nil {
		Logger.Errorf("transaction listing failed: %v", err)
		return msgStoreFailure
	}
	if user.ID == 0 {
		return "User not found."
	}

	txs, err := e.transactions.GetByUser(id)
	if err != nil {
		Logger.Errorf("transaction listing failed: %v", err)
		return msgStoreFailure
	}
	if len(txs) == 0 {
		return "No transactions."
	}
	return formatTransactions(txs)
}

// viewAllTransactions lists every transaction in the system.
func (e *Engine) viewAllTransactions(sess *Session) string {
	txs, err := e.transactions.GetAll()
	if err != nil {
		Logger.Errorf("transaction listing failed: %v", err)
		return e.done(sess, msgStoreFailure)
	}
	if len(txs) == 0 {
		return e.done(sess, "No transactions.")
	}
	return e.done(sess, formatTransactions(txs))
}

func formatTransactions(txs []library.Transaction) string {
	var sb strings.Builder
	for _, tx := range txs {
		fmt.Fprintf(&sb, "ID: %d | User: %d | Book: %d | Status: %s | Borrowed: %s | Due: %s | Returned: %s\n",
			tx.ID, tx.UserID, tx.BookID, tx.Status,
			formatDate(tx.BorrowDate), formatDate(tx.DueDate), formatDate(tx.ReturnDate))
	}
	return strings.TrimRight(sb.String(), "\n")
}
