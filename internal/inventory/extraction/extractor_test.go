package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/api-inventory/internal/config"
	"github.com/mvp-joe/api-inventory/internal/inventory/parsers"
)

// Test Plan for the node extractor:
// - Constant policies: no_underscore vs uppercase acceptance
// - Annotated assignments are constant candidates too
// - Enum classification by base name (simple and dotted), member
//   collection, and the include_enums toggle
// - __init__ is always an instance method, decorators notwithstanding
// - Method kind from staticmethod/classmethod decorators
// - public_only filtering of functions, classes and methods
// - Class-scope constants via recursion; nested classes stay internal
// - Output ordering: constants/methods by name, the rest by qname
// - Docstring stripping

func parseSource(t *testing.T, src string) []parsers.Decl {
	t.Helper()
	mod, err := parsers.Parse([]byte(src), "test.py")
	require.NoError(t, err)
	return mod.Decls
}

func TestExtract_ConstantPolicyNoUnderscore(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
MAX_SIZE = 10
max_size = 20
_hidden = 30
Name = "x"
`)

	cfg := config.Default()
	consts, _, _, _ := New(cfg, "mod").Extract(decls, ScopeModule)

	require.Len(t, consts, 3)
	// Sorted by name; underscore-prefixed names filtered out.
	assert.Equal(t, "MAX_SIZE", consts[0].Name)
	assert.Equal(t, "Name", consts[1].Name)
	assert.Equal(t, "max_size", consts[2].Name)

	assert.Equal(t, int64(10), consts[0].Value)
	assert.Equal(t, "10", consts[0].ValueRepr)
	assert.Equal(t, VisibilityPublic, consts[0].Visibility)
	assert.Equal(t, ScopeModule, consts[0].Scope)
}

func TestExtract_ConstantPolicyUppercase(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
MAX_SIZE = 10
max_size = 20
_MAX = 30
`)

	cfg := config.Default()
	cfg.ConstantVisibility = config.ConstantVisibilityUppercase
	consts, _, _, _ := New(cfg, "mod").Extract(decls, ScopeModule)

	require.Len(t, consts, 1)
	assert.Equal(t, "MAX_SIZE", consts[0].Name)
}

func TestExtract_AnnotatedConstant(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, "LIMIT: int = 5\n")

	consts, _, _, _ := New(config.Default(), "mod").Extract(decls, ScopeModule)

	require.Len(t, consts, 1)
	assert.Equal(t, "LIMIT", consts[0].Name)
	assert.Equal(t, int64(5), consts[0].Value)
}

func TestExtract_UnresolvableConstantKeepsRepr(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, "ROOT = os.environ[\"HOME\"]\n")

	consts, _, _, _ := New(config.Default(), "mod").Extract(decls, ScopeModule)

	require.Len(t, consts, 1)
	assert.Nil(t, consts[0].Value)
	assert.Equal(t, `os.environ["HOME"]`, consts[0].ValueRepr)
}

func TestExtract_EnumClassification(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
class Color(Enum):
    """Palette."""
    RED = 1
    GREEN = 2
    _order = "RED GREEN"

class Level(enum.IntEnum):
    LOW = 0

class Plain(Base):
    pass
`)

	cfg := config.Default()
	_, enums, _, classes := New(cfg, "mod").Extract(decls, ScopeModule)

	require.Len(t, enums, 2)
	assert.Equal(t, "Color", enums[0].Name)
	assert.Equal(t, "mod.Color", enums[0].QName)
	assert.Equal(t, "Palette.", enums[0].Docstring)
	// Members sorted by name; underscore-prefixed assignments skipped.
	require.Len(t, enums[0].Members, 2)
	assert.Equal(t, "GREEN", enums[0].Members[0].Name)
	assert.Equal(t, "2", enums[0].Members[0].ValueRepr)
	assert.Equal(t, "RED", enums[0].Members[1].Name)

	assert.Equal(t, "mod.Level", enums[1].QName)

	require.Len(t, classes, 1)
	assert.Equal(t, "Plain", classes[0].Name)
}

func TestExtract_EnumToggleOff(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
class Color(Enum):
    RED = 1
`)

	cfg := config.Default()
	cfg.IncludeEnums = false
	_, enums, _, classes := New(cfg, "mod").Extract(decls, ScopeModule)

	assert.Empty(t, enums)
	// With enum detection off the class is just a class.
	require.Len(t, classes, 1)
	assert.Equal(t, "Color", classes[0].Name)
}

func TestExtract_InitAlwaysInstance(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
class Service:
    @staticmethod
    def __init__(self):
        pass
`)

	cfg := config.Default() // public_only enabled
	_, _, _, classes := New(cfg, "mod").Extract(decls, ScopeModule)

	require.Len(t, classes, 1)
	require.Len(t, classes[0].Methods, 1)
	init := classes[0].Methods[0]
	assert.Equal(t, "__init__", init.Name)
	assert.Equal(t, MethodKindInstance, init.Kind)
	assert.Equal(t, VisibilityDunder, init.Visibility)
	assert.Equal(t, "mod.Service.__init__", init.QName)
}

func TestExtract_MethodKinds(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
class Box:
    def get(self):
        pass

    @staticmethod
    def make():
        pass

    @classmethod
    def of(cls, v):
        pass
`)

	_, _, _, classes := New(config.Default(), "mod").Extract(decls, ScopeModule)

	require.Len(t, classes, 1)
	methods := classes[0].Methods
	require.Len(t, methods, 3)
	// Sorted by name: get, make, of.
	assert.Equal(t, MethodKindInstance, methods[0].Kind)
	assert.Equal(t, MethodKindStatic, methods[1].Kind)
	assert.Equal(t, MethodKindClass, methods[2].Kind)
	assert.Equal(t, []string{"staticmethod"}, methods[1].Decorators)
}

func TestExtract_PublicOnlyFiltering(t *testing.T) {
	t.Parallel()

	src := `
def visible():
    pass

def _hidden():
    pass

class _Internal:
    pass

class Widget:
    def show(self):
        pass

    def _paint(self):
        pass
`

	cfg := config.Default()
	_, _, funcs, classes := New(cfg, "mod").Extract(parseSource(t, src), ScopeModule)

	require.Len(t, funcs, 1)
	assert.Equal(t, "mod.visible", funcs[0].QName)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Methods, 1)
	assert.Equal(t, "show", classes[0].Methods[0].Name)

	cfg2 := config.Default()
	cfg2.PublicOnly = false
	_, _, funcs2, classes2 := New(cfg2, "mod").Extract(parseSource(t, src), ScopeModule)

	assert.Len(t, funcs2, 2)
	require.Len(t, classes2, 2)
	// qname sort puts "mod.Widget" before "mod._Internal".
	widget := classes2[0]
	assert.Equal(t, "Widget", widget.Name)
	assert.Len(t, widget.Methods, 2)
}

func TestExtract_ClassScopeConstants(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
class Settings:
    TIMEOUT = 30

    class Inner:
        DEPTH = 2
`)

	_, _, _, classes := New(config.Default(), "mod").Extract(decls, ScopeModule)

	require.Len(t, classes, 1)
	settings := classes[0]
	require.Len(t, settings.Constants, 1)
	assert.Equal(t, "TIMEOUT", settings.Constants[0].Name)
	assert.Equal(t, ScopeClass, settings.Constants[0].Scope)
	// Nested classes are not surfaced.
	assert.Empty(t, settings.Methods)
}

func TestExtract_FunctionsOnlyAtModuleScope(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, "def f():\n    pass\n")

	_, _, funcs, _ := New(config.Default(), "mod").Extract(decls, ScopeClass)
	assert.Empty(t, funcs)
}

func TestExtract_DecoratorsSorted(t *testing.T) {
	t.Parallel()

	decls := parseSource(t, `
@zeta
@alpha
def f():
    pass
`)

	_, _, funcs, _ := New(config.Default(), "mod").Extract(decls, ScopeModule)

	require.Len(t, funcs, 1)
	assert.Equal(t, []string{"alpha", "zeta"}, funcs[0].Decorators)
}

func TestExtract_StripDocstrings(t *testing.T) {
	t.Parallel()

	src := "def f():\n    \"\"\"\n    Padded docs.\n    \"\"\"\n    pass\n"

	cfg := config.Default()
	cfg.StripDocstrings = true
	_, _, funcs, _ := New(cfg, "mod").Extract(parseSource(t, src), ScopeModule)

	require.Len(t, funcs, 1)
	assert.Equal(t, "Padded docs.", funcs[0].Docstring)
}

func TestExtract_TogglesDisableCollection(t *testing.T) {
	t.Parallel()

	src := `
X = 1

def f():
    pass
`

	cfg := config.Default()
	cfg.IncludeConstants = false
	cfg.IncludeFunctions = false
	consts, _, funcs, _ := New(cfg, "mod").Extract(parseSource(t, src), ScopeModule)

	assert.Empty(t, consts)
	assert.Empty(t, funcs)
}
