package eventflow_test

import (
	"errors"
	"testing"

	"github.com/randalmurphal/eventflow/pkg/eventflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

func TestBuild_FourHandlers(t *testing.T) {
	doc, err := eventflow.Build(fourHandlers())
	require.NoError(t, err)

	assert.Equal(t, []string{"H1", "H2", "H3", "H4"}, doc.EventMappings.Owners())
	assert.Equal(t, []string{"user.created", "email.sent"}, doc.Events.Names())

	created, ok := doc.Events.Get("user.created")
	require.True(t, ok)
	assert.Equal(t, []string{"H1"}, created.Emitters)
	assert.Equal(t, `Event "user.created" emitted by H1`, created.Description)

	sent, ok := doc.Events.Get("email.sent")
	require.True(t, ok)
	assert.Equal(t, []string{"H2"}, sent.Emitters)

	h4, ok := doc.EventMappings.Get("H4")
	require.True(t, ok)
	assert.Equal(t, []string{}, h4.Emit)
	assert.Equal(t, []string{"**"}, h4.Listen)
}

func TestBuild_Empty(t *testing.T) {
	doc, err := eventflow.Build(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.EventMappings.Len())
	assert.Equal(t, 0, doc.Events.Len())
	assert.Equal(t, eventflow.DefaultTitle, doc.Info.Title)
	assert.Equal(t, eventflow.DefaultVersion, doc.Info.Version)
}

func TestBuild_MultipleEmitters(t *testing.T) {
	doc, err := eventflow.Build([]eventflow.Descriptor{
		{OwnerID: "A", Emit: "order.placed"},
		{OwnerID: "B", Emit: []string{"order.placed", "order.placed"}},
		{OwnerID: "C", Emit: "order.placed"},
	})
	require.NoError(t, err)

	rec, ok := doc.Events.Get("order.placed")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, rec.Emitters)
	assert.Equal(t, `Event "order.placed" emitted by A, B, C`, rec.Description)

	// Raw arrays keep their duplicates
	b, _ := doc.EventMappings.Get("B")
	assert.Equal(t, []string{"order.placed", "order.placed"}, b.Emit)
}

func TestBuild_EmittersCommutative(t *testing.T) {
	a := eventflow.Descriptor{OwnerID: "A", Emit: "e"}
	b := eventflow.Descriptor{OwnerID: "B", Emit: "e"}

	ab, err := eventflow.Build([]eventflow.Descriptor{a, b})
	require.NoError(t, err)
	ba, err := eventflow.Build([]eventflow.Descriptor{b, a})
	require.NoError(t, err)

	recAB, _ := ab.Events.Get("e")
	recBA, _ := ba.Events.Get("e")
	assert.ElementsMatch(t, recAB.Emitters, recBA.Emitters)
	assert.ElementsMatch(t, []string{"A", "B"}, recAB.Emitters)
}

func TestBuild_LastWriteWins(t *testing.T) {
	doc, err := eventflow.Build([]eventflow.Descriptor{
		{OwnerID: "A", Emit: "old.event"},
		{OwnerID: "B", Emit: "shared"},
		{OwnerID: "A", Emit: []string{"shared", "new.event"}, Listen: "x"},
	})
	require.NoError(t, err)

	// A keeps its first position but carries the latest declaration
	assert.Equal(t, []string{"A", "B"}, doc.EventMappings.Owners())
	a, _ := doc.EventMappings.Get("A")
	assert.Equal(t, []string{"shared", "new.event"}, a.Emit)
	assert.Equal(t, []string{"x"}, a.Listen)

	// The superseded declaration leaves nothing behind
	_, ok := doc.Events.Get("old.event")
	assert.False(t, ok)
	assert.Equal(t, []string{"shared", "new.event"}, doc.Events.Names())

	shared, _ := doc.Events.Get("shared")
	assert.Equal(t, []string{"A", "B"}, shared.Emitters)
}

func TestBuild_MalformedFailsFast(t *testing.T) {
	doc, err := eventflow.Build([]eventflow.Descriptor{
		{OwnerID: "ok", Emit: "a"},
		{OwnerID: "bad-emit", Emit: map[string]any{"name": "a"}},
		{OwnerID: "bad-listen", Listen: 7},
	})
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, eventflow.ErrMalformedDescriptor))
	assert.Contains(t, err.Error(), "bad-emit")
	assert.Contains(t, err.Error(), "bad-listen")
}

func TestBuild_MissingOwner(t *testing.T) {
	_, err := eventflow.Build([]eventflow.Descriptor{{Emit: "a"}})
	assert.ErrorIs(t, err, eventflow.ErrMissingOwnerID)
}

func TestBuildDeclarations(t *testing.T) {
	doc, err := eventflow.BuildDeclarations([]eventflow.Declaration{
		{OwnerID: "A", Emits: []string{"a.b"}},
		{OwnerID: "B", Listens: []string{"a.*"}},
	}, eventflow.WithTitle("Custom"), eventflow.WithVersion("2.1.0"))
	require.NoError(t, err)

	assert.Equal(t, eventflow.Info{Title: "Custom", Version: "2.1.0"}, doc.Info)
	b, _ := doc.EventMappings.Get("B")
	assert.Equal(t, []string{}, b.Emit)

	_, err = eventflow.BuildDeclarations([]eventflow.Declaration{{}})
	assert.ErrorIs(t, err, eventflow.ErrMissingOwnerID)
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	emits := []string{"a"}
	doc, err := eventflow.Build([]eventflow.Descriptor{{OwnerID: "A", Emit: emits}})
	require.NoError(t, err)

	emits[0] = "mutated"
	a, _ := doc.EventMappings.Get("A")
	assert.Equal(t, []string{"a"}, a.Emit)
}

func TestEvents_GetReturnsCopy(t *testing.T) {
	doc, err := eventflow.Build(fourHandlers())
	require.NoError(t, err)

	rec, _ := doc.Events.Get("user.created")
	rec.Emitters[0] = "mutated"

	again, _ := doc.Events.Get("user.created")
	assert.Equal(t, []string{"H1"}, again.Emitters)
}

func TestRange_EarlyStop(t *testing.T) {
	doc, err := eventflow.Build(fourHandlers())
	require.NoError(t, err)

	var owners []string
	doc.EventMappings.Range(func(owner string, _ eventflow.Mapping) bool {
		owners = append(owners, owner)
		return len(owners) < 2
	})
	assert.Equal(t, []string{"H1", "H2"}, owners)

	var names []string
	doc.Events.Range(func(r eventflow.EventRecord) bool {
		names = append(names, r.Name)
		return false
	})
	assert.Equal(t, []string{"user.created"}, names)
}

func TestDocumentation_JSON(t *testing.T) {
	doc, err := eventflow.Build(fourHandlers())
	require.NoError(t, err)

	data, err := doc.JSON()
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))

	assert.Equal(t, "3.0.0", gjson.GetBytes(data, "openapi").String())
	assert.Equal(t, eventflow.DefaultTitle, gjson.GetBytes(data, "info.title").String())
	assert.Equal(t, "1.0.0", gjson.GetBytes(data, "info.version").String())
	assert.Equal(t, `["user.created"]`, compact(gjson.GetBytes(data, "eventMappings.H1.emit").Raw))
	assert.Equal(t, `[]`, compact(gjson.GetBytes(data, "eventMappings.H1.listen").Raw))
	assert.Equal(t, `["**"]`, compact(gjson.GetBytes(data, "eventMappings.H4.listen").Raw))
	assert.Equal(t, "H2", gjson.GetBytes(data, `events.email\.sent.emitters.0`).String())
	assert.Equal(t, `Event "user.created" emitted by H1`,
		gjson.GetBytes(data, `events.user\.created.description`).String())

	// Table order is preserved
	var owners []string
	gjson.GetBytes(data, "eventMappings").ForEach(func(key, _ gjson.Result) bool {
		owners = append(owners, key.String())
		return true
	})
	assert.Equal(t, []string{"H1", "H2", "H3", "H4"}, owners)

	var events []string
	gjson.GetBytes(data, "events").ForEach(func(key, _ gjson.Result) bool {
		events = append(events, key.String())
		return true
	})
	assert.Equal(t, []string{"user.created", "email.sent"}, events)
}

func TestDocumentation_JSONEmpty(t *testing.T) {
	doc, err := eventflow.Build(nil)
	require.NoError(t, err)

	data, err := doc.JSON()
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))
	assert.Equal(t, "{}", compact(gjson.GetBytes(data, "eventMappings").Raw))
	assert.Equal(t, "{}", compact(gjson.GetBytes(data, "events").Raw))
}

// compact strips whitespace from a raw JSON fragment.
func compact(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}
