package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdsync/internal/core/domain"
)

func mustParse(t *testing.T, s string) domain.Value {
	t.Helper()
	v, err := domain.ParseJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestGet(t *testing.T) {
	doc := mustParse(t, `{"contact":{"first":"Jo","emails":["a@x.io","b@x.io"],"age":0,"fax":null}}`)

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"nested key", "contact.first", "Jo", true},
		{"leading dot", ".contact.first", "Jo", true},
		{"trailing dot", "contact.first.", "Jo", true},
		{"surrounding spaces", "  contact.first ", "Jo", true},
		{"list index", "contact.emails.1", "b@x.io", true},
		{"list index out of range", "contact.emails.2", "", false},
		{"negative list index", "contact.emails.-1", "", false},
		{"zero value present", "contact.age", "0", true},
		{"null present", "contact.fax", "null", true},
		{"missing key", "contact.last", "", false},
		{"through scalar", "contact.first.len", "", false},
		{"through null", "contact.fax.number", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Get(doc, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestGet_InvalidPathsAreAbsent(t *testing.T) {
	docs := []domain.Value{
		mustParse(t, `{"a":{"b":1},"":{"":2}}`),
		domain.NewMap(),
		domain.String("scalar"),
	}
	paths := []string{"", "   ", ".", "..", "a..b", "...", "a.b..", " . "}

	for _, doc := range docs {
		for _, path := range paths {
			_, ok := Get(doc, path)
			assert.False(t, ok, "Get(%v, %q) should be absent", doc, path)
		}
	}
}

func TestGet_NullRoot(t *testing.T) {
	_, ok := Get(domain.Null(), "a")
	assert.False(t, ok)
}

func TestGet_ScalarRoot(t *testing.T) {
	_, ok := Get(domain.Int(5), "a")
	assert.False(t, ok)
}

func TestSetThenGet_RoundTrip(t *testing.T) {
	paths := []string{"a", "a.b.c", "x.y", ".lead.trail.", "deep.er.and.deeper"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			root := domain.NewMap()
			value := domain.String("v-" + path)

			Set(root, path, value)

			got, ok := Get(root, path)
			require.True(t, ok)
			assert.True(t, value.Equal(got))
		})
	}
}

func TestSet_OverwritesScalarIntermediate(t *testing.T) {
	root := mustParse(t, `{"a":5}`)

	Set(root, "a.b", domain.Int(1))

	assert.True(t, mustParse(t, `{"a":{"b":1}}`).Equal(root))
}

func TestSet_OverwritesListIntermediate(t *testing.T) {
	root := mustParse(t, `{"a":[1,2]}`)

	Set(root, "a.0", domain.Int(9))

	assert.True(t, mustParse(t, `{"a":{"0":9}}`).Equal(root))
}

func TestSet_KeepsSiblings(t *testing.T) {
	root := mustParse(t, `{"a":{"keep":true}}`)

	Set(root, "a.b", domain.String("new"))

	assert.True(t, mustParse(t, `{"a":{"keep":true,"b":"new"}}`).Equal(root))
}

func TestSet_OverwritesLeaf(t *testing.T) {
	root := mustParse(t, `{"a":{"b":{"c":1}}}`)

	Set(root, "a.b", domain.Int(2))

	assert.True(t, mustParse(t, `{"a":{"b":2}}`).Equal(root))
}

func TestSet_NoOpOnInvalidInput(t *testing.T) {
	for _, path := range []string{"", " ", ".", "..", "a..b"} {
		root := mustParse(t, `{"a":1}`)
		Set(root, path, domain.Int(2))
		assert.True(t, mustParse(t, `{"a":1}`).Equal(root), "path %q", path)
	}

	// Non-object roots are left alone.
	scalar := domain.String("x")
	Set(scalar, "a", domain.Int(1))
	assert.Equal(t, "x", scalar.String())

	null := domain.Null()
	Set(null, "a", domain.Int(1))
	assert.True(t, null.IsNull())
}
