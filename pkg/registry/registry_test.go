package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/axicon-labs/constable/pkg/errors"
	"github.com/axicon-labs/constable/pkg/logging"
	"github.com/axicon-labs/constable/pkg/registry"
)

const testRegistryYAML = `
topology:
  n_gen: 3.0
  chi_eff:
    value: 144.0
    display: "144"
couplings:
  alpha_inv:
    value: 137.035999
    uncertainty: 2.1e-8
    unit: ""
scales:
  planck_h:
    value: 6.62607015e-34
    unit: "J s"
`

func TestLoad(t *testing.T) {
	logging.DisableLoggingForTest(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRegistryYAML), 0o644))

	reg, err := registry.Load(path)
	require.NoError(t, err)
	require.Len(t, reg.Entries, 4)
	assert.Equal(t, path, reg.Source)

	// Entries come back sorted by path
	paths := make([]string, 0, len(reg.Entries))
	for _, e := range reg.Entries {
		paths = append(paths, string(e.Path))
	}
	assert.Equal(t, []string{
		"couplings.alpha_inv",
		"scales.planck_h",
		"topology.chi_eff",
		"topology.n_gen",
	}, paths)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := registry.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var ioErr *pkgerrors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestParse(t *testing.T) {
	logging.DisableLoggingForTest(t)

	t.Run("scalar shorthand and explicit mapping", func(t *testing.T) {
		reg, err := registry.Parse([]byte(testRegistryYAML), "registry.yaml")
		require.NoError(t, err)

		byPath := make(map[registry.Path]registry.Entry)
		for _, e := range reg.Entries {
			byPath[e.Path] = e
		}

		nGen := byPath["topology.n_gen"]
		assert.Equal(t, 3.0, nGen.Value)

		chiEff := byPath["topology.chi_eff"]
		assert.Equal(t, 144.0, chiEff.Value)
		assert.Equal(t, "144", chiEff.Display)

		alphaInv := byPath["couplings.alpha_inv"]
		assert.Equal(t, 137.035999, alphaInv.Value)
		require.NotNil(t, alphaInv.Uncertainty)
		assert.Equal(t, 2.1e-8, *alphaInv.Uncertainty)

		planck := byPath["scales.planck_h"]
		assert.Equal(t, 6.62607015e-34, planck.Value)
		assert.Equal(t, "J s", planck.Unit)
	})

	t.Run("malformed top-level structure is fatal", func(t *testing.T) {
		_, err := registry.Parse([]byte("- just\n- a\n- sequence\n"), "registry.yaml")
		require.Error(t, err)

		var parseErr *pkgerrors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("malformed entries are skipped, not fatal", func(t *testing.T) {
		yaml := `
good:
  a: 1.5
bad:
  text: not-a-number
  infinite: .inf
`
		reg, err := registry.Parse([]byte(yaml), "registry.yaml")
		require.NoError(t, err)
		require.Len(t, reg.Entries, 1)
		assert.Equal(t, registry.Path("good.a"), reg.Entries[0].Path)

		require.Len(t, reg.Skipped, 2)
		reasons := map[registry.Path]string{}
		for _, s := range reg.Skipped {
			reasons[s.Path] = s.Reason
		}
		assert.Equal(t, "value is not finite", reasons["bad.infinite"])
		assert.Equal(t, "non-numeric value", reasons["bad.text"])
	})

	t.Run("numeric strings are accepted", func(t *testing.T) {
		reg, err := registry.Parse([]byte("a:\n  b: \"42.5\"\n"), "registry.yaml")
		require.NoError(t, err)
		require.Len(t, reg.Entries, 1)
		assert.Equal(t, 42.5, reg.Entries[0].Value)
	})

	t.Run("deep nesting flattens with dots", func(t *testing.T) {
		reg, err := registry.Parse([]byte("a:\n  b:\n    c:\n      d: 7\n"), "registry.yaml")
		require.NoError(t, err)
		require.Len(t, reg.Entries, 1)
		assert.Equal(t, registry.Path("a.b.c.d"), reg.Entries[0].Path)
		assert.Equal(t, 7.0, reg.Entries[0].Value)
	})

	t.Run("negative integers decode", func(t *testing.T) {
		reg, err := registry.Parse([]byte("a:\n  b: -12\n"), "registry.yaml")
		require.NoError(t, err)
		require.Len(t, reg.Entries, 1)
		assert.Equal(t, -12.0, reg.Entries[0].Value)
	})
}
