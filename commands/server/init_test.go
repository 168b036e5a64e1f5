package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestInitCmd(t *testing.T) {
	home, err := ioutil.TempDir("", "swaplockd-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func(args []string) (json.RawMessage, error) {
		return json.RawMessage(`{"funds": []}`), nil
	}
	logger := log.NewNopLogger()
	require.NoError(t, InitCmd(gen, logger, home, nil))

	genFile := filepath.Join(home, "config", "genesis.json")
	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)

	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	assert.NotEmpty(t, doc["chain_id"])
	assert.NotEmpty(t, doc["validators"])

	var state map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc[appStateKey], &state))
	assert.Contains(t, state, "funds")

	keyFile := filepath.Join(home, "config", "priv_validator_key.json")
	assert.True(t, fileExists(keyFile))

	// A second run must keep the first chain id and validator.
	require.NoError(t, InitCmd(gen, logger, home, nil))
	bz2, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)
	var doc2 GenesisDoc
	require.NoError(t, json.Unmarshal(bz2, &doc2))
	assert.EqualValues(t, doc["chain_id"], doc2["chain_id"])
	assert.EqualValues(t, doc["validators"], doc2["validators"])
}

func TestAddGenesisOptions(t *testing.T) {
	home, err := ioutil.TempDir("", "swaplockd-genopts")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	genFile := filepath.Join(home, "genesis.json")
	orig := []byte(`{"chain_id": "chain-test", "custom": ["foo", "bar"]}`)
	require.NoError(t, ioutil.WriteFile(genFile, orig, 0600))

	options := json.RawMessage(`{"token": {"assets": []}}`)
	require.NoError(t, addGenesisOptions(genFile, options))

	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))

	// The original content must survive next to the injected state.
	assert.EqualValues(t, `"chain-test"`, string(doc["chain_id"]))
	assert.NotEmpty(t, doc["custom"])
	var state map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc[appStateKey], &state))
	assert.Contains(t, state, "token")
}

func TestGenerateKey(t *testing.T) {
	addr, secret, err := GenerateKey()
	require.NoError(t, err)
	require.NoError(t, addr.Validate())
	assert.NotEmpty(t, secret)

	addr2, _, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, addr, addr2)
}
