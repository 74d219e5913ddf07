/*
Package eventflow documents the event-flow topology of a pub/sub application.

# Overview

Handlers declare which events they emit and which event patterns they
listen to. eventflow aggregates those declarations into a Documentation
value, which the subpackages turn into artifacts:

  - diagram: a Mermaid flow chart linking emitters to matching listeners
  - typegen: the closed set of valid event identifiers, as Go or TypeScript
  - generate: renders every artifact and writes them concurrently

eventflow never runs handlers and never delivers events.

# Declaring Handlers

Register handlers explicitly on a Collector:

	c := eventflow.NewCollector()
	c.MustRegister(eventflow.Descriptor{
	    OwnerID: "EventsController.createUser",
	    Emit:    []string{"user.created"},
	})
	c.MustRegister(eventflow.Descriptor{
	    OwnerID: "EventsController.onUserCreated",
	    Emit:    "email.sent",
	    Listen:  []string{"user.created"},
	})

	doc, err := c.Build(eventflow.WithTitle("Users"))

Or load them from a YAML/JSON declaration file with LoadDescriptors.

# Normalization

Emit and Listen accept nil, a single string, or a list of strings. Any
other shape fails with ErrMalformedDescriptor before anything is built.

# Aggregation

Build produces two tables:

  - EventMappings: owner id -> {emit, listen}, in registration order
  - Events: event name -> {description, emitters}, in first-emission order

Emitters have set semantics. A handler that lists the same event twice, or
is folded twice, appears once. Registering the same owner id again replaces
the earlier declaration entirely (last write wins).

# Thread Safety

Collector is safe for concurrent use. Documentation is immutable after
Build and may be shared by concurrent generators.
*/
package eventflow
