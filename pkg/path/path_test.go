package path

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		wantLen  int
		relative bool
		wantErr  bool
	}{
		{"", 0, false, false},
		{".", 0, true, false},
		{"A", 1, false, false},
		{"A.B.0", 3, false, false},
		{".^.1", 2, true, false},
		{"0.1.2", 3, false, false},
		{"A..B", 0, false, true},
		{"A.", 0, false, true},
		{"..A", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPath) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidPath", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if p.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", p.Len(), tt.wantLen)
			}
			if p.IsRelative() != tt.relative {
				t.Errorf("IsRelative() = %v, want %v", p.IsRelative(), tt.relative)
			}
		})
	}
}

func TestParse_ComponentKinds(t *testing.T) {
	p := MustParse("knot.^.3")

	assert.True(t, p.Component(0).IsName())
	assert.Equal(t, "knot", p.Component(0).Name())
	assert.Equal(t, -1, p.Component(0).Index())

	assert.True(t, p.Component(1).IsParent())
	assert.False(t, p.Component(1).IsName())

	assert.True(t, p.Component(2).IsIndex())
	assert.Equal(t, 3, p.Component(2).Index())
	assert.Equal(t, "", p.Component(2).Name())
}

func TestString_RoundTrip(t *testing.T) {
	inputs := []string{"", ".", "A", "A.B.0", ".^.^.2", "knot.stitch", "0"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p := MustParse(in)
			if got := p.String(); got != in {
				t.Errorf("String() = %q, want %q", got, in)
			}
			back := MustParse(p.String())
			if !back.Equal(p) {
				t.Errorf("round trip of %q produced %q", in, back.String())
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		base string
		rel  string
		want string
	}{
		{"A.B", ".0", "A.B.0"},
		{"A.B.0", ".^.1", "A.B.1"},
		{"A.B.0", ".^.^.C", "A.C"},
		{"A", ".^.^.^", ""},
		{"", ".0.0", "0.0"},
		{".^", ".0", ".^.0"},
		{"A.B", ".", "A.B"},
	}

	for _, tt := range tests {
		t.Run(tt.base+"+"+tt.rel, func(t *testing.T) {
			got := MustParse(tt.base).Join(MustParse(tt.rel))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAppend_DoesNotAlias(t *testing.T) {
	base := New(Name("A"), Index(0))
	a := base.Append(Index(1))
	b := base.Append(Index(2))

	assert.Equal(t, "A.0.1", a.String())
	assert.Equal(t, "A.0.2", b.String())
	assert.Equal(t, "A.0", base.String())
}

func TestComponents_ReturnsCopy(t *testing.T) {
	p := New(Name("A"), Index(0))
	comps := p.Components()
	comps[0] = Index(9)

	assert.Equal(t, "A.0", p.String())
}

func TestHeadTailLast(t *testing.T) {
	p := MustParse("A.B.2")

	head, ok := p.Head()
	require.True(t, ok)
	assert.Equal(t, Name("A"), head)

	assert.Equal(t, ".B.2", p.Tail().String())
	assert.True(t, MustParse("A").Tail().Equal(Self()))

	last, ok := p.LastComponent()
	require.True(t, ok)
	assert.Equal(t, Index(2), last)

	_, ok = Path{}.Head()
	assert.False(t, ok)
	_, ok = Path{}.LastComponent()
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	assert.True(t, MustParse("A.0").Equal(New(Name("A"), Index(0))))
	assert.False(t, MustParse("A.0").Equal(MustParse(".A.0")))
	assert.False(t, MustParse("A.0").Equal(MustParse("A.1")))
	assert.False(t, MustParse("A").Equal(MustParse("A.0")))
}

func TestContainsNamedComponent(t *testing.T) {
	assert.True(t, MustParse("0.A").ContainsNamedComponent())
	assert.False(t, MustParse("0.1").ContainsNamedComponent())
	assert.False(t, MustParse(".^.0").ContainsNamedComponent())
}

func TestComponentConstructors_Panic(t *testing.T) {
	assert.Panics(t, func() { Index(-1) })
	assert.Panics(t, func() { Name("") })
	assert.Panics(t, func() { Name("a.b") })
	assert.Panics(t, func() { Name("12") })
	assert.True(t, Name("^").IsParent())
	assert.Equal(t, Parent(), Name("^"))
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"knot", true},
		{"a1", true},
		{"1a", true},
		{"", false},
		{"a.b", false},
		{".", false},
		{"12", false},
		{"0", false},
		{"^", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidName(tt.name))
		})
	}
}

func TestParse_IndexOverflow(t *testing.T) {
	_, err := Parse("A.99999999999999999999999")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestJSON(t *testing.T) {
	type holder struct {
		Target Path `json:"target"`
	}

	data, err := json.Marshal(holder{Target: MustParse("A.B.0")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"A.B.0"}`, string(data))

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"target":".^.1"}`), &h))
	assert.Equal(t, ".^.1", h.Target.String())

	err = json.Unmarshal([]byte(`{"target":"A..B"}`), &h)
	assert.ErrorIs(t, err, ErrInvalidPath)

	err = json.Unmarshal([]byte(`{"target":12}`), &h)
	assert.Error(t, err)
}

func TestYAML(t *testing.T) {
	type holder struct {
		Target Path `yaml:"target"`
	}

	out, err := yaml.Marshal(holder{Target: MustParse("knot.0")})
	require.NoError(t, err)
	assert.Equal(t, "target: knot.0\n", string(out))

	var h holder
	require.NoError(t, yaml.Unmarshal([]byte("target: .^.2\n"), &h))
	assert.Equal(t, ".^.2", h.Target.String())

	err = yaml.Unmarshal([]byte("target: [a, b]\n"), &h)
	assert.Error(t, err)
}
