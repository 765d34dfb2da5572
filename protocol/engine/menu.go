package engine

import (
	"strings"

	"shelfd/lib/library"
)

// entryMenu greets unauthenticated sessions.
const entryMenu = `Library Management System
1. Login
2. Register
3. Exit
Choice: `

// userMgmtMenu lists the administrative sub-commands.
const userMgmtMenu = `User Management
11. Activate User
12. Deactivate User
13. Delete User
14. Change User to Admin
15. Change User to Regular User
16. View User Transactions
17. View All Transactions
18. Permanently Delete User
0. Back
Choice: `

// mainMenu renders the authenticated menu. Administrative entries are shown
// to admins only; the codes are still rejected with an access-denied message
// for everyone else.
func (e *Engine) mainMenu(sess *Session) string {
	var sb strings.Builder

	sb.WriteString("Main Menu\n")
	sb.WriteString("1. Search Books\n")
	sb.WriteString("2. Borrow Book\n")
	sb.WriteString("3. Return Book\n")
	sb.WriteString("4. View My Borrowed Books\n")
	sb.WriteString("5. View My Returned Books\n")
	if sess.User.Role == library.RoleAdmin {
		sb.WriteString("6. Add Book\n")
		sb.WriteString("7. Remove Book\n")
		sb.WriteString("8. Add Category\n")
		sb.WriteString("9. Manage Users\n")
	}
	sb.WriteString("10. Logout\n")
	sb.WriteString("20. Change Password\n")
	sb.WriteString("Choice: ")

	return sb.String()
}
