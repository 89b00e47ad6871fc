package auth

import (
	"testing"

	"civicreport-be/models"
)

func TestEvaluate(t *testing.T) {
	admin := Authenticated{UID: "1", Email: "admin@example.com", Role: models.RoleAdmin}
	citizen := Authenticated{UID: "2", Email: "user@example.com"}

	cases := []struct {
		name     string
		session  Session
		ready    bool
		required models.Role
		want     Decision
	}{
		{name: "pending while restoring", session: Anonymous{}, ready: false, required: models.RoleAdmin, want: DecisionPending},
		{name: "pending even when signed in", session: admin, ready: false, required: models.RoleAdmin, want: DecisionPending},
		{name: "anonymous redirected to sign-in", session: Anonymous{}, ready: true, required: models.RoleAdmin, want: DecisionSignIn},
		{name: "missing role is forbidden", session: citizen, ready: true, required: models.RoleAdmin, want: DecisionForbidden},
		{name: "admin allowed", session: admin, ready: true, required: models.RoleAdmin, want: DecisionAllow},
		{name: "no role required allows any user", session: citizen, ready: true, required: "", want: DecisionAllow},
		{name: "no role required still needs a session", session: Anonymous{}, ready: true, required: "", want: DecisionSignIn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.session, tc.ready, tc.required); got != tc.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tc.want)
			}
		})
	}
}
