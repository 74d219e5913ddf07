package eventflow_test

import "github.com/randalmurphal/eventflow/pkg/eventflow"

// fourHandlers is the reference topology: create user, send welcome email,
// log the email, and audit everything.
func fourHandlers() []eventflow.Descriptor {
	return []eventflow.Descriptor{
		{OwnerID: "H1", Emit: []string{"user.created"}, Listen: []string{}},
		{OwnerID: "H2", Emit: []string{"email.sent"}, Listen: []string{"user.created"}},
		{OwnerID: "H3", Emit: []string{}, Listen: []string{"email.sent"}},
		{OwnerID: "H4", Listen: []string{"**"}},
	}
}
