package cli

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wcgcyx/tracegen/field/goldilocks"
	"github.com/wcgcyx/tracegen/generation"
	"github.com/wcgcyx/tracegen/kernel"
)

const (
	testKernel = `{"code":"0x5b6000","global_labels":{"main":0,"observe_new_address":1}}`
	testInputs = `{
		"accounts": [{"address": "0x976EA74026E726554dB657fA54763abd0C3a0aa9", "nonce": "0x1", "balance": "0x64"}],
		"signed_txns": ["0xaabb"]
	}`
)

func writeFixtures(t *testing.T) (string, string, string) {
	dir := t.TempDir()
	kernelPath := filepath.Join(dir, "kernel.json")
	inputsPath := filepath.Join(dir, "inputs.json")
	assert.Nil(t, os.WriteFile(kernelPath, []byte(testKernel), os.ModePerm))
	assert.Nil(t, os.WriteFile(inputsPath, []byte(testInputs), os.ModePerm))
	t.Setenv("DATA_DIR", dir)
	return dir, kernelPath, inputsPath
}

func TestWitnessCommand(t *testing.T) {
	dir, kernelPath, inputsPath := writeFixtures(t)

	assert.Nil(t, NewCLI().Run([]string{"tracegen", "witness", "--kernel", kernelPath, "--no-cache", inputsPath}))
	assert.NoDirExists(t, filepath.Join(dir, "witnessdata"))

	// Twice through the store, the second run reuses the witness.
	for i := 0; i < 2; i++ {
		assert.Nil(t, NewCLI().Run([]string{"tracegen", "witness", "--kernel", kernelPath, "--field", "bn254", inputsPath}))
	}
	assert.DirExists(t, filepath.Join(dir, "witnessdata"))

	assert.NotNil(t, NewCLI().Run([]string{"tracegen", "witness", "--kernel", kernelPath}))
	assert.NotNil(t, NewCLI().Run([]string{"tracegen", "witness", "--kernel", kernelPath, "--field", "babybear", inputsPath}))
	assert.NotNil(t, NewCLI().Run([]string{"tracegen", "witness", "--kernel", filepath.Join(dir, "missing.json"), inputsPath}))
}

func TestLabelsCommand(t *testing.T) {
	_, kernelPath, _ := writeFixtures(t)
	assert.Nil(t, NewCLI().Run([]string{"tracegen", "labels", "--kernel", kernelPath}))
	assert.Nil(t, NewCLI().Run([]string{"tracegen", "version"}))
}

func TestWitnessReport(t *testing.T) {
	_, kernelPath, inputsPath := writeFixtures(t)
	k, err := kernel.LoadKernel(kernelPath)
	assert.Nil(t, err)
	inputs, err := generation.LoadInputs(inputsPath)
	assert.Nil(t, err)

	r, err := openState[goldilocks.Element](nil, inputs, k)
	assert.Nil(t, err)

	var buf bytes.Buffer
	assert.Nil(t, writeReport(&buf, r))
	var out map[string]any
	assert.Nil(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, inputs.Digest().Hex(), out["digest"])
	assert.Equal(t, k.CodeHash().Hex(), out["kernel_hash"])
	assert.Equal(t, float64(1), out["signed_txns"])
	assert.Equal(t, float64(3), out["rlp_inputs"])
	assert.Equal(t, float64(1), out["observe_label"])
	assert.Greater(t, out["mpt_inputs"], float64(0))
}
