package expense

import (
	"github.com/arjav-14/cost-console/internal/user"
)

// The visibility rules are pure functions of (actor, record), evaluated
// per request. There is no cached ACL; the check is O(1).

// CanCreate reports whether the actor may submit a new expense. Every
// authenticated actor may; the created record's owner is forced to the
// actor's id by the service, whatever the client sent.
func CanCreate(actor user.Actor) bool {
	return actor.Role.Valid()
}

// CanRead reports whether the actor may view the given expense: admins
// always, everyone else only their own records.
func CanRead(actor user.Actor, e *Expense) bool {
	if actor.IsAdmin() {
		return true
	}
	return e.SubmittedBy == actor.ID
}

// CanUpdateStatus reports whether the actor may change review statuses.
// Admin only; ownership is irrelevant.
func CanUpdateStatus(actor user.Actor) bool {
	return actor.IsAdmin()
}

// ListScope narrows a listing to the records the actor may see. An admin
// scope is unrestricted; a non-admin scope pins the owner to the actor,
// regardless of any filters supplied on top.
type ListScope struct {
	OwnerID *int64
}

func ScopeFor(actor user.Actor) ListScope {
	if actor.IsAdmin() {
		return ListScope{}
	}
	id := actor.ID
	return ListScope{OwnerID: &id}
}
